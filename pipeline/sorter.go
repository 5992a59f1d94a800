package pipeline

import (
	"fmt"

	"github.com/biogo/store/llrb"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/layoutline"
)

// sortItem adapts item to llrb.Comparable, ordering by LineContext.
type sortItem struct {
	it item
}

func (s *sortItem) Compare(other llrb.Comparable) int {
	return layoutline.Compare(s.it.ctx, other.(*sortItem).it.ctx)
}

// contextKey is a canonical string encoding of a LineContext, used for
// duplicate detection independent of the tree's own ordering (llrb's
// behavior on inserting two equal keys is not something this code relies
// on).
func contextKey(c layoutline.LineContext) string {
	return fmt.Sprintf("%d/%v/%v/%d/%d", c.ContigIndex, c.EdgeIndex, c.AlignmentIndex,
		c.PreviousContigEdgeCount, c.PreviousEdgeAlignmentCount)
}

// runSorter buffers items arriving out of order in a balanced tree keyed by
// LineContext and releases them to out strictly in input order, using
// DirectlyPrecedes to recognize the next releasable record. It returns an
// error if two distinct records share a LineContext, if an incoming record's
// context disagrees with an already-buffered one on a carryover count it
// should agree on, or if the input ends with records still stuck behind a
// gap.
func runSorter(items <-chan item, out chan<- item, cancelled <-chan struct{}) (err error) {
	defer close(out)
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(layoutline.InvariantViolation); ok {
				err = iv
				return
			}
			panic(r)
		}
	}()

	tree := llrb.Tree{}
	seen := make(map[string]struct{})
	var current layoutline.LineContext
	haveEmitted := false

	drain := func() error {
		for tree.Len() > 0 {
			var min *sortItem
			tree.Do(func(c llrb.Comparable) bool {
				min = c.(*sortItem)
				return true
			})
			ready := !haveEmitted && layoutline.Equal(min.it.ctx, layoutline.LineContext{})
			if !ready && haveEmitted {
				ready = current.DirectlyPrecedes(min.it.ctx)
			}
			if !ready {
				return nil
			}
			tree.DeleteMin()
			select {
			case out <- min.it:
			case <-cancelled:
				return nil
			}
			current = min.it.ctx
			haveEmitted = true
		}
		return nil
	}

	for it := range items {
		key := contextKey(it.ctx)
		if _, dup := seen[key]; dup {
			return errors.Errorf("duplicate line context %s", key)
		}
		seen[key] = struct{}{}
		tree.Insert(&sortItem{it: it})
		vlog.VI(2).Infof("sorter: buffered %s, %d pending", key, tree.Len())
		if err := drain(); err != nil {
			return err
		}
	}
	if tree.Len() > 0 {
		var stuck *sortItem
		tree.Do(func(c llrb.Comparable) bool {
			stuck = c.(*sortItem)
			return true
		})
		return errors.Errorf("input exhausted with %d record(s) stuck out of order; earliest pending context %s",
			tree.Len(), contextKey(stuck.it.ctx))
	}
	return nil
}
