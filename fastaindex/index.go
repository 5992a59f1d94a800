// Package fastaindex builds a random-access byte-sequence index over a
// FASTA file: a contiguous scratch file of newline-terminated sequences,
// plus an in-memory read-id -> FileSlice map, queried with a single
// positional read per lookup.
package fastaindex

import (
	"io"
	"os"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// FileSlice locates one read's sequence bytes within the scratch file.
// offset + length + 1 <= total scratch size, the +1 accounting for the
// sentinel newline written after every record.
type FileSlice struct {
	Offset uint64
	Length uint64
}

// Index serves get_sequence queries against a scratch file built by Build or
// BuildParallel. The id map is read-only once built and safe to share across
// concurrent callers; queries use a positional read so no shared file cursor
// is ever touched.
type Index struct {
	scratch *os.File
	slices  map[string]FileSlice
}

// DuplicateIDError reports a read id that appeared more than once while
// building the index.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string { return "fastaindex: duplicate read id " + e.ID }

// MissingIDError reports a query for a read id absent from the index.
type MissingIDError struct {
	ID string
}

func (e MissingIDError) Error() string { return "fastaindex: missing read id " + e.ID }

// Build streams FASTA records from r on the calling goroutine, appending
// each sequence (followed by a sentinel newline) to scratch and recording
// its FileSlice. scratch must be empty and positioned at offset 0.
func Build(r io.Reader, scratch *os.File, ioBufferSize int) (*Index, error) {
	scanner := newRecordScanner(r, ioBufferSize)
	w := newScratchWriter(scratch, ioBufferSize)
	slices := make(map[string]FileSlice)
	for {
		rec, err := scanner.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		slice, err := w.append(rec.seq)
		if err != nil {
			return nil, errors.Wrapf(err, "writing sequence for read %q", rec.id)
		}
		if _, dup := slices[rec.id]; dup {
			return nil, DuplicateIDError{ID: rec.id}
		}
		slices[rec.id] = slice
	}
	if err := w.flush(); err != nil {
		return nil, errors.Wrap(err, "flushing FASTA scratch file")
	}
	return &Index{scratch: scratch, slices: slices}, nil
}

// BuildParallel is the concurrent build mode: a reader goroutine parses
// FASTA records into a bounded queue; the calling goroutine drains it,
// writes the scratch file, and builds the id map. Closing the queue
// (signalled by the reader goroutine's completion) ends the build. Output is
// identical to Build; only the construction pipeline is parallel.
func BuildParallel(r io.Reader, scratch *os.File, ioBufferSize, queueSize int) (*Index, error) {
	records := make(chan record, queueSize)
	readErr := make(chan error, 1)

	go func() {
		defer close(records)
		scanner := newRecordScanner(r, ioBufferSize)
		for {
			rec, err := scanner.next()
			if err == io.EOF {
				readErr <- nil
				return
			}
			if err != nil {
				readErr <- err
				return
			}
			records <- rec
		}
	}()

	w := newScratchWriter(scratch, ioBufferSize)
	slices := make(map[string]FileSlice)
	for rec := range records {
		slice, err := w.append(rec.seq)
		if err != nil {
			return nil, errors.Wrapf(err, "writing sequence for read %q", rec.id)
		}
		if _, dup := slices[rec.id]; dup {
			return nil, DuplicateIDError{ID: rec.id}
		}
		slices[rec.id] = slice
	}
	if err := <-readErr; err != nil {
		return nil, err
	}
	if err := w.flush(); err != nil {
		return nil, errors.Wrap(err, "flushing FASTA scratch file")
	}
	return &Index{scratch: scratch, slices: slices}, nil
}

// Get overwrites out with the sequence bytes of read id, resizing it to the
// record's length, via a single positional read. A missing id is fatal.
func (ix *Index) Get(id string, out []byte) ([]byte, error) {
	slice, ok := ix.slices[id]
	if !ok {
		return nil, MissingIDError{ID: id}
	}
	if uint64(cap(out)) < slice.Length {
		out = make([]byte, slice.Length)
	} else {
		out = out[:slice.Length]
	}
	n, err := ix.scratch.ReadAt(out, int64(slice.Offset))
	if err != nil {
		return nil, errors.Wrapf(err, "positional read for read %q", id)
	}
	if uint64(n) != slice.Length {
		return nil, errors.Errorf("short positional read for read %q: got %d bytes, want %d", id, n, slice.Length)
	}
	if log.At(log.Debug) {
		log.Debug.Printf("fastaindex: served %q (%d bytes) checksum=%x", id, n, seahash.Sum64(out))
	}
	return out, nil
}
