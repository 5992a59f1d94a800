package pipeline

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// runReader reads in as newline-delimited lines and forwards each raw line
// (trailing newline stripped) to lines. It closes lines when it returns:
// when the input is exhausted, on a read error, or once cancelled is closed.
func runReader(in io.Reader, bufferSize int, lines chan<- []byte, cancelled <-chan struct{}) error {
	defer close(lines)
	r := bufio.NewReaderSize(in, bufferSize)
	for {
		raw, err := r.ReadBytes('\n')
		if len(raw) > 0 {
			line := bytes.TrimRight(raw, "\r\n")
			cp := make([]byte, len(line))
			copy(cp, line)
			select {
			case lines <- cp:
			case <-cancelled:
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading layout input")
		}
	}
}
