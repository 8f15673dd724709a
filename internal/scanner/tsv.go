package scanner

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ScanTSV reads a delimited index with a header row and columns
// index, path, sentence, ... Only the path and sentence columns are used.
// The delimiter is a tab when the header contains one, a comma otherwise.
//
// Every physical line is one record. Tab-delimited rows are split as is,
// quotes included; comma-delimited rows honor quoting within the line.
func ScanTSV(path string, fn func(Row) error) error {
	f, err := openIndex(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var delim rune
	stopped := false
	err = eachLine(f, func(num int, line string) error {
		// заголовок
		if num == 1 {
			delim = sniffDelimiter(line)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}

		rec, perr := splitRecord(line, delim)
		var row Row
		switch {
		case perr != nil:
			row = malformed(num, line, "%v", perr)
		case len(rec) < 3:
			row = malformed(num, line, "expected at least 3 columns, got %d", len(rec))
		default:
			row = Row{
				Line: num,
				Key:  strings.TrimSpace(rec[1]),
				Text: strings.TrimSpace(rec[2]),
			}
		}
		if err := fn(row); err != nil {
			stopped = true
			return err
		}
		return nil
	})
	if err != nil && !stopped {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return err
}

// splitRecord parses a single line. A quote can never pull the next line
// into the record.
func splitRecord(line string, delim rune) ([]string, error) {
	if delim == '\t' {
		return strings.Split(line, "\t"), nil
	}

	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rec, err := r.Read()
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func sniffDelimiter(header string) rune {
	if strings.Contains(header, "\t") {
		return '\t'
	}
	return ','
}
