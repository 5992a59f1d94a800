package decompress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompressZeroIsZero(t *testing.T) {
	seqs := [][]byte{
		nil,
		[]byte("A"),
		[]byte("AACCG"),
		{0, 0, 1, 1, 2, 3, 3, 3, 4, 5},
	}
	for _, seq := range seqs {
		so, sl := Decompress(0, 0, seq)
		require.Equal(t, uint64(0), so)
		require.Equal(t, uint64(0), sl)
	}
}

func TestDecompressScenarios(t *testing.T) {
	seq := []byte{0, 0, 1, 1, 2, 3, 3, 3, 4, 5}
	cases := []struct {
		o, l   uint64
		so, sl uint64
	}{
		{0, 0, 0, 0},
		{0, 1, 0, 2},
		{0, 2, 0, 4},
		{1, 2, 2, 4},
		{2, 4, 4, 8},
		{3, 5, 5, 9},
		{4, 5, 8, 9},
		{5, 5, 9, 9},
		{0, 6, 0, 10},
		{6, 6, 10, 10},
	}
	for _, c := range cases {
		so, sl := Decompress(c.o, c.l, seq)
		require.Equal(t, c.so, so, "offset for (%d,%d)", c.o, c.l)
		require.Equal(t, c.sl, sl, "limit for (%d,%d)", c.o, c.l)
	}
}

func TestDecompressOrderedAndBounded(t *testing.T) {
	seq := []byte{0, 0, 1, 1, 2, 3, 3, 3, 4, 5}
	for o := uint64(0); o <= 6; o++ {
		for l := o; l <= 6; l++ {
			so, sl := Decompress(o, l, seq)
			require.LessOrEqual(t, so, sl)
			require.LessOrEqual(t, sl, uint64(len(seq)))
		}
	}
}

func TestDecompressRunCountMatchesWindow(t *testing.T) {
	seq := []byte{0, 0, 1, 1, 2, 3, 3, 3, 4, 5}
	for o := uint64(0); o <= 6; o++ {
		for l := o; l <= 6; l++ {
			so, sl := Decompress(o, l, seq)
			require.Equal(t, int(l-o), countRuns(seq[so:sl]))
		}
	}
}

func countRuns(seq []byte) int {
	if len(seq) == 0 {
		return 0
	}
	runs := 1
	for i := 1; i < len(seq); i++ {
		if seq[i] != seq[i-1] {
			runs++
		}
	}
	return runs
}

func TestReverseComplement(t *testing.T) {
	src := []byte("ACGTN")
	dst := make([]byte, len(src))
	require.NoError(t, ReverseComplement(dst, src))
	require.Equal(t, "NACGT", string(dst))
}

func TestReverseComplementRejectsUnrecognizedBase(t *testing.T) {
	src := []byte("ACXT")
	dst := make([]byte, len(src))
	err := ReverseComplement(dst, src)
	require.Error(t, err)
	var unrec UnrecognizedBaseError
	require.ErrorAs(t, err, &unrec)
	require.Equal(t, byte('X'), unrec.Base)
}
