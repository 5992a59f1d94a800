package pipeline

import (
	"sync"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/pkg/errors"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/decompress"
	"github.com/sebschmi/wtdbg2-homopolymer-decompression/layoutline"
)

// runDecompressors fans tasks out across numWorkers goroutines, each mapping
// an alignment's HoCo offset/length back to uncompressed coordinates and
// slicing (and, for a reverse-strand alignment, reverse-complementing) its
// payload bytes out of the looked-up read sequence. Results are forwarded to
// sorterItems in no particular order; the sorter restores input order.
// runDecompressors does not close sorterItems: the parser stage also sends
// on it directly for Contig/Edge records, so the caller closes it once both
// producers have finished.
func runDecompressors(tasks <-chan decoratorTask, sorterItems chan<- item, numWorkers int, cancelled <-chan struct{}) error {
	var wg sync.WaitGroup
	var once baseerrors.Once
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				out, err := decompressOne(t)
				if err != nil {
					once.Set(err)
					return
				}
				select {
				case sorterItems <- out:
				case <-cancelled:
					return
				}
			}
		}()
	}
	wg.Wait()
	return once.Err()
}

func decompressOne(t decoratorTask) (item, error) {
	a := t.work.align
	limit := a.Offset + a.Length
	shiftedOffset, shiftedLimit := decompress.Decompress(a.Offset, limit, t.seq)

	if shiftedLimit < shiftedOffset || shiftedLimit > uint64(len(t.seq)) {
		return item{}, errors.Errorf("decompressed bounds [%d,%d) out of range for read %q of length %d",
			shiftedOffset, shiftedLimit, a.ReadID, len(t.seq))
	}

	payload := make([]byte, shiftedLimit-shiftedOffset)
	if a.Direction {
		copy(payload, t.seq[shiftedOffset:shiftedLimit])
	} else {
		if err := decompress.ReverseComplement(payload, t.seq[shiftedOffset:shiftedLimit]); err != nil {
			return item{}, errors.Wrapf(err, "alignment for read %q", a.ReadID)
		}
	}

	out := layoutline.Alignment{
		ReadID:         a.ReadID,
		Direction:      a.Direction,
		Offset:         shiftedOffset,
		Length:         shiftedLimit - shiftedOffset,
		OriginalLength: a.OriginalLength,
	}
	return item{ctx: t.work.ctx, line: out, payload: payload}, nil
}
