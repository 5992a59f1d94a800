package layoutline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func contigHeader(contig uint64, prevContigEdgeCount, prevEdgeAlignmentCount uint64) LineContext {
	return LineContext{
		ContigIndex:                contig,
		PreviousContigEdgeCount:    prevContigEdgeCount,
		PreviousEdgeAlignmentCount: prevEdgeAlignmentCount,
	}
}

func edgeCtx(contig, edge uint64, prevContigEdgeCount, prevEdgeAlignmentCount uint64) LineContext {
	return LineContext{
		ContigIndex:                contig,
		EdgeIndex:                  SetCount(edge),
		PreviousContigEdgeCount:    prevContigEdgeCount,
		PreviousEdgeAlignmentCount: prevEdgeAlignmentCount,
	}
}

func alignCtx(contig, edge, alignment uint64, prevContigEdgeCount, prevEdgeAlignmentCount uint64) LineContext {
	return LineContext{
		ContigIndex:                contig,
		EdgeIndex:                  SetCount(edge),
		AlignmentIndex:             SetCount(alignment),
		PreviousContigEdgeCount:    prevContigEdgeCount,
		PreviousEdgeAlignmentCount: prevEdgeAlignmentCount,
	}
}

func TestCompareOrdersWithinContig(t *testing.T) {
	c := contigHeader(0, 0, 0)
	e0 := edgeCtx(0, 0, 0, 0)
	a0 := alignCtx(0, 0, 0, 0, 0)
	a1 := alignCtx(0, 0, 1, 0, 0)
	e1 := edgeCtx(0, 1, 0, 1)

	require.Negative(t, Compare(c, e0))
	require.Negative(t, Compare(e0, a0))
	require.Negative(t, Compare(a0, a1))
	require.Negative(t, Compare(a1, e1))
	require.Zero(t, Compare(c, c))
}

func TestCompareAcrossContigs(t *testing.T) {
	c0 := contigHeader(0, 0, 0)
	c1 := contigHeader(1, 1, 0)
	require.Negative(t, Compare(c0, c1))
}

func TestComparePanicsOnDisagreeingCarryover(t *testing.T) {
	a := edgeCtx(0, 0, 0, 0)
	bad := LineContext{ContigIndex: 0, PreviousContigEdgeCount: 1}
	require.Panics(t, func() { Compare(a, bad) })
}

func TestDirectlyPrecedesWithinEdge(t *testing.T) {
	a0 := alignCtx(0, 0, 0, 0, 0)
	a1 := alignCtx(0, 0, 1, 0, 0)
	require.True(t, a0.DirectlyPrecedes(a1))
	require.False(t, a1.DirectlyPrecedes(a0))
}

func TestDirectlyPrecedesEdgeToFirstAlignment(t *testing.T) {
	e0 := edgeCtx(0, 0, 0, 0)
	a0 := alignCtx(0, 0, 0, 0, 0)
	require.True(t, e0.DirectlyPrecedes(a0))
}

func TestDirectlyPrecedesAcrossEdges(t *testing.T) {
	// edge 0 had 2 alignments (indices 0,1); edge 1 freezes that as
	// PreviousEdgeAlignmentCount = 2.
	a1 := alignCtx(0, 0, 1, 0, 0)
	e1 := edgeCtx(0, 1, 0, 2)
	require.True(t, a1.DirectlyPrecedes(e1))
}

func TestDirectlyPrecedesAcrossContigs(t *testing.T) {
	// contig 0 has 1 edge (index 0) with 3 alignments (0,1,2).
	a2 := alignCtx(0, 0, 2, 0, 0)
	c1 := contigHeader(1, 1, 3)
	require.True(t, a2.DirectlyPrecedes(c1))
}

func TestDirectlyPrecedesAcrossContigsWithEmptyContig(t *testing.T) {
	// contig 0 has zero edges: its own header is the last record before
	// contig 1 begins.
	c0 := contigHeader(0, 0, 0)
	c1 := contigHeader(1, 0, 0)
	require.True(t, c0.DirectlyPrecedes(c1))
}

func TestDirectlyPrecedesFirstEdgeOfNewContigResetsCarryover(t *testing.T) {
	// contig 1's own first edge must show PreviousEdgeAlignmentCount = 0,
	// regardless of how many alignments contig 0's last edge carried.
	c1 := contigHeader(1, 1, 5)
	e0 := edgeCtx(1, 0, 1, 0)
	require.True(t, c1.DirectlyPrecedes(e0))
}

func TestDirectlyPrecedesRejectsNonSuccessors(t *testing.T) {
	a0 := alignCtx(0, 0, 0, 0, 0)
	a2 := alignCtx(0, 0, 2, 0, 0)
	require.False(t, a0.DirectlyPrecedes(a2))

	e0 := edgeCtx(0, 0, 0, 0)
	e2 := edgeCtx(0, 2, 0, 0)
	require.False(t, e0.DirectlyPrecedes(e2))
}

func TestEqual(t *testing.T) {
	a := alignCtx(1, 2, 3, 4, 5)
	b := alignCtx(1, 2, 3, 4, 5)
	require.True(t, Equal(a, b))
	c := alignCtx(1, 2, 4, 4, 5)
	require.False(t, Equal(a, c))
}
