package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrIndexNotFound = errors.New("index file not found")
	ErrMalformedRow  = errors.New("malformed row")
)

// Row is one entry of a corpus index. Key is the raw utterance id for
// transcripts.txt and the audio path column for TSV indexes. Rows that
// failed to parse carry Err and keep the raw line in Key.
type Row struct {
	Line int
	Key  string
	Text string
	Err  error
}

func openIndex(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
	}
	return f, err
}

// eachLine calls fn for every physical line of r with its 1-based number
// and without the line terminator. Lines have no length limit.
func eachLine(r io.Reader, fn func(num int, line string) error) error {
	br := bufio.NewReader(r)
	num := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			num++
			if ferr := fn(num, strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func malformed(line int, raw, format string, args ...interface{}) Row {
	return Row{
		Line: line,
		Key:  raw,
		Err:  fmt.Errorf("%w: line %d: %s", ErrMalformedRow, line, fmt.Sprintf(format, args...)),
	}
}
