package pipeline

import (
	"github.com/pkg/errors"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/fastaindex"
)

// decoratorTask is an alignment paired with the uncompressed read sequence
// it must be decompressed against.
type decoratorTask struct {
	work alignmentWork
	seq  []byte
}

// runDecorator looks up each alignment's read sequence in ix and forwards
// the pair to tasks. A read id absent from ix is fatal.
func runDecorator(work <-chan alignmentWork, ix *fastaindex.Index, tasks chan<- decoratorTask, cancelled <-chan struct{}) error {
	defer close(tasks)
	for w := range work {
		seq, err := ix.Get(string(w.align.ReadID), nil)
		if err != nil {
			return errors.Wrapf(err, "decorating alignment for read %q", w.align.ReadID)
		}
		select {
		case tasks <- decoratorTask{work: w, seq: seq}:
		case <-cancelled:
			return nil
		}
	}
	return nil
}
