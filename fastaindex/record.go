package fastaindex

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// record is one parsed FASTA entry: an id and its concatenated sequence
// bytes.
type record struct {
	id  string
	seq []byte
}

// recordScanner streams FASTA records out of r, one header/sequence group at
// a time, in the same ReadBytes('\n') style as the rest of this codebase
// family's FASTA handling.
type recordScanner struct {
	r       *bufio.Reader
	pending []byte // header line already consumed for the next record, if any
	done    bool
}

func newRecordScanner(r io.Reader, bufferSize int) *recordScanner {
	return &recordScanner{r: bufio.NewReaderSize(r, bufferSize)}
}

// next returns the next record, or io.EOF once the stream is exhausted.
func (s *recordScanner) next() (record, error) {
	if s.done {
		return record{}, io.EOF
	}
	var header []byte
	if s.pending != nil {
		header = s.pending
		s.pending = nil
	} else {
		line, err := s.readLine()
		if err == io.EOF {
			s.done = true
			return record{}, io.EOF
		}
		if err != nil {
			return record{}, err
		}
		header = line
	}
	if len(header) == 0 || header[0] != '>' {
		return record{}, errors.Errorf("malformed FASTA file: expected record header, got %q", header)
	}
	id := strings.Split(string(header[1:]), " ")[0]

	var seq bytes.Buffer
	for {
		line, err := s.readLine()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return record{}, err
		}
		if len(line) > 0 && line[0] == '>' {
			s.pending = line
			break
		}
		seq.Write(line)
	}
	return record{id: id, seq: seq.Bytes()}, nil
}

// readLine returns the next line with its trailing "\r\n"/"\n" stripped, or
// io.EOF if the stream is exhausted with nothing left to read.
func (s *recordScanner) readLine() ([]byte, error) {
	line, err := s.r.ReadBytes('\n')
	if len(line) == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading FASTA")
	}
	return bytes.TrimRight(line, "\r\n"), nil
}
