package scanner

import (
	"fmt"
	"strings"
)

// ScanTranscripts reads a transcripts.txt index ("id<TAB>text" per line)
// and calls fn once per non-empty line. Lines without a tab are passed
// through with Err set. An error returned by fn stops the scan.
func ScanTranscripts(path string, fn func(Row) error) error {
	f, err := openIndex(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stopped := false
	err = eachLine(f, func(num int, raw string) error {
		line := strings.TrimSpace(raw)
		if line == "" {
			return nil
		}

		// Формат: "ID<TAB>текст"
		parts := strings.SplitN(line, "\t", 2)
		row := malformed(num, line, "expected id<TAB>text")
		if len(parts) == 2 {
			row = Row{
				Line: num,
				Key:  strings.TrimSpace(parts[0]),
				Text: strings.TrimSpace(parts[1]),
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
