package fastaindex

import (
	"bufio"
	"os"
)

// scratchWriter appends sequences to a scratch file through a buffered
// writer, tracking each append's FileSlice and the running write offset.
type scratchWriter struct {
	w      *bufio.Writer
	offset uint64
}

func newScratchWriter(f *os.File, bufferSize int) *scratchWriter {
	return &scratchWriter{w: bufio.NewWriterSize(f, bufferSize)}
}

// append writes seq followed by the sentinel newline and returns the
// FileSlice locating seq within the scratch file.
func (sw *scratchWriter) append(seq []byte) (FileSlice, error) {
	slice := FileSlice{Offset: sw.offset, Length: uint64(len(seq))}
	if _, err := sw.w.Write(seq); err != nil {
		return FileSlice{}, err
	}
	if err := sw.w.WriteByte('\n'); err != nil {
		return FileSlice{}, err
	}
	sw.offset += slice.Length + 1
	return slice, nil
}

func (sw *scratchWriter) flush() error {
	return sw.w.Flush()
}
