package pipeline

import (
	"github.com/pkg/errors"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/layoutline"
)

// alignmentWork is an alignment record awaiting sequence lookup and
// decompression; it carries its own context and the raw offset/length it
// was parsed with (before the decorator/decompressor stages rewrite them).
type alignmentWork struct {
	ctx   layoutline.LineContext
	align layoutline.Alignment
}

// parserState tracks the running counters needed to stamp each parsed line
// with its LineContext, per the carryover rules: PreviousContigEdgeCount and
// PreviousEdgeAlignmentCount are frozen from the scope that is ending,
// whenever a Contig or Edge line opens a new scope; an ending contig or edge
// that was empty freezes a count of 0.
type parserState struct {
	haveContig    bool
	contigIndex   uint64
	edgeIndex     layoutline.Count
	alignIndex    layoutline.Count
	edgeCount     uint64 // edges seen so far in the current contig
	alignAccum    uint64 // alignments seen so far in the current edge
	prevContigEdg uint64
	prevEdgeAlign uint64
}

// advance updates state for line and returns its LineContext. It returns an
// error if line appears outside its required scope (an Edge before any
// Contig, an Alignment before any Edge).
func (s *parserState) advance(line layoutline.Line) (layoutline.LineContext, error) {
	switch line.(type) {
	case layoutline.Contig:
		if s.haveContig {
			s.prevContigEdg = s.edgeCount
			s.prevEdgeAlign = s.alignAccum
			s.contigIndex++
		} else {
			s.haveContig = true
			s.contigIndex = 0
		}
		s.edgeCount = 0
		s.alignAccum = 0
		s.edgeIndex = layoutline.Count{}
		s.alignIndex = layoutline.Count{}
		return s.context(), nil

	case layoutline.Edge:
		if !s.haveContig {
			return layoutline.LineContext{}, errors.Errorf("edge line outside any contig")
		}
		s.prevEdgeAlign = s.alignAccum
		s.edgeIndex = layoutline.SetCount(s.edgeCount)
		s.edgeCount++
		s.alignAccum = 0
		s.alignIndex = layoutline.Count{}
		return s.context(), nil

	case layoutline.Alignment:
		if !s.haveContig || !s.edgeIndex.Valid() {
			return layoutline.LineContext{}, errors.Errorf("alignment line outside any edge")
		}
		s.alignIndex = layoutline.SetCount(s.alignAccum)
		s.alignAccum++
		return s.context(), nil

	default:
		return layoutline.LineContext{}, errors.Errorf("unknown line type %T", line)
	}
}

func (s *parserState) context() layoutline.LineContext {
	return layoutline.LineContext{
		ContigIndex:                s.contigIndex,
		EdgeIndex:                  s.edgeIndex,
		AlignmentIndex:             s.alignIndex,
		PreviousContigEdgeCount:    s.prevContigEdg,
		PreviousEdgeAlignmentCount: s.prevEdgeAlign,
	}
}

// runParser parses raw lines and routes Contig/Edge records directly to
// sorterItems and Alignment records to decoratorWork.
// runParser does not close sorterItems: the decompressor stage also sends
// on it, so the caller closes it once both producers have finished.
func runParser(lines <-chan []byte, sorterItems chan<- item, decoratorWork chan<- alignmentWork, cancelled <-chan struct{}) error {
	defer close(decoratorWork)
	var state parserState
	for raw := range lines {
		line, err := layoutline.ParseLine(raw)
		if err != nil {
			return errors.Wrapf(err, "parsing line %q", raw)
		}
		ctx, err := state.advance(line)
		if err != nil {
			return errors.Wrapf(err, "line %q", raw)
		}
		if a, ok := line.(layoutline.Alignment); ok {
			select {
			case decoratorWork <- alignmentWork{ctx: ctx, align: a}:
			case <-cancelled:
				return nil
			}
			continue
		}
		select {
		case sorterItems <- item{ctx: ctx, line: line}:
		case <-cancelled:
			return nil
		}
	}
	return nil
}
