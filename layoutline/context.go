package layoutline

import "fmt"

// Count is an optional non-negative index. The zero value is "unset" and
// represents the "no edge/alignment in this scope yet" state described in
// spec section 3 ("Three-state integer fields"), rather than encoding that
// state with a sentinel like -1.
type Count struct {
	N     uint64
	valid bool
}

// SetCount returns a Count holding n.
func SetCount(n uint64) Count { return Count{N: n, valid: true} }

// Valid reports whether the counter holds a value.
func (c Count) Valid() bool { return c.valid }

// next returns the index a directly-succeeding record in the same scope
// would carry: 0 if c is unset, or c.N+1 otherwise.
func (c Count) next() uint64 {
	if !c.valid {
		return 0
	}
	return c.N + 1
}

func (c Count) String() string {
	if !c.valid {
		return "none"
	}
	return fmt.Sprintf("%d", c.N)
}

func (c Count) equal(other Count) bool {
	if c.valid != other.valid {
		return false
	}
	return !c.valid || c.N == other.N
}

// LineContext is the monotone ordering key the parser assigns to every
// record: a position in (contig, edge, alignment) space plus the carryover
// counts needed to validate a record's direct predecessor across a contig
// or edge boundary. See spec section 3.
//
// PreviousContigEdgeCount and PreviousEdgeAlignmentCount are plain counters
// (0 meaning "none seen yet"), rather than Counts like EdgeIndex and
// AlignmentIndex: unlike an index, which must be told apart from "no
// edge/alignment exists in this scope" for ordering purposes, a carryover
// count of 0 and "nothing to carry over" are observably identical - both
// describe an edge/contig boundary where the preceding scope was empty.
type LineContext struct {
	ContigIndex    uint64
	EdgeIndex      Count
	AlignmentIndex Count

	// PreviousContigEdgeCount is the number of edges emitted under the
	// contig immediately preceding ContigIndex.
	PreviousContigEdgeCount uint64
	// PreviousEdgeAlignmentCount is the number of alignments emitted under
	// the edge immediately preceding this record's edge scope. It is frozen
	// whenever an edge's scope ends - at the next Edge record in the same
	// contig, or at the next Contig record if the ending edge was the
	// contig's last - so it carries across contig boundaries rather than
	// resetting at each new contig.
	PreviousEdgeAlignmentCount uint64
}

// InvariantViolation is the error carried by a panic when two LineContexts
// that should agree on a carryover count do not (spec section 7,
// "contig-count carryovers that disagree at comparison time").
type InvariantViolation struct {
	Message string
}

func (e InvariantViolation) Error() string { return e.Message }

// Compare orders two LineContexts lexicographically on
// (ContigIndex, EdgeIndex, AlignmentIndex). It panics with an
// InvariantViolation if two contexts that share a contig disagree on
// PreviousContigEdgeCount, or if two that share an edge disagree on
// PreviousEdgeAlignmentCount.
func Compare(a, b LineContext) int {
	if a.ContigIndex != b.ContigIndex {
		if a.ContigIndex < b.ContigIndex {
			return -1
		}
		return 1
	}
	if a.PreviousContigEdgeCount != b.PreviousContigEdgeCount {
		panic(InvariantViolation{fmt.Sprintf(
			"contexts sharing contig %d disagree on previous contig edge count: %d vs %d",
			a.ContigIndex, a.PreviousContigEdgeCount, b.PreviousContigEdgeCount)})
	}
	if cmp := compareCount(a.EdgeIndex, b.EdgeIndex); cmp != 0 {
		return cmp
	}
	if a.PreviousEdgeAlignmentCount != b.PreviousEdgeAlignmentCount {
		panic(InvariantViolation{fmt.Sprintf(
			"contexts sharing contig %d edge %v disagree on previous edge alignment count: %d vs %d",
			a.ContigIndex, a.EdgeIndex, a.PreviousEdgeAlignmentCount, b.PreviousEdgeAlignmentCount)})
	}
	return compareCount(a.AlignmentIndex, b.AlignmentIndex)
}

// compareCount orders an unset Count before every set Count, and otherwise
// compares numerically. An unset EdgeIndex/AlignmentIndex only ever occurs
// on a Contig or Edge record respectively, which must sort before any Edge
// or Alignment record in the same scope.
func compareCount(a, b Count) int {
	if a.valid != b.valid {
		if !a.valid {
			return -1
		}
		return 1
	}
	if !a.valid {
		return 0
	}
	switch {
	case a.N < b.N:
		return -1
	case a.N > b.N:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b are the same context.
func Equal(a, b LineContext) bool {
	return a.ContigIndex == b.ContigIndex &&
		a.EdgeIndex.equal(b.EdgeIndex) &&
		a.AlignmentIndex.equal(b.AlignmentIndex) &&
		a.PreviousContigEdgeCount == b.PreviousContigEdgeCount &&
		a.PreviousEdgeAlignmentCount == b.PreviousEdgeAlignmentCount
}

// DirectlyPrecedes reports whether b is the unique immediate successor of a
// in input order, per spec section 3.
func (a LineContext) DirectlyPrecedes(b LineContext) bool {
	switch {
	case a.ContigIndex != b.ContigIndex:
		if b.ContigIndex != a.ContigIndex+1 {
			return false
		}
		return a.EdgeIndex.next() == b.PreviousContigEdgeCount &&
			a.AlignmentIndex.next() == b.PreviousEdgeAlignmentCount
	case !a.EdgeIndex.equal(b.EdgeIndex):
		bEdge, ok := b.EdgeIndex.value()
		if !ok || bEdge != a.EdgeIndex.next() {
			return false
		}
		return a.AlignmentIndex.next() == b.PreviousEdgeAlignmentCount
	case !a.AlignmentIndex.equal(b.AlignmentIndex):
		bAlign, ok := b.AlignmentIndex.value()
		if !ok {
			return false
		}
		return bAlign == a.AlignmentIndex.next()
	default:
		return false
	}
}

func (c Count) value() (uint64, bool) {
	if !c.valid {
		return 0, false
	}
	return c.N, true
}
