package layoutline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLineContig(t *testing.T) {
	l, err := ParseLine([]byte(">c1\tnodes=2\tlen=0"))
	require.NoError(t, err)
	require.Equal(t, Contig{Name: "c1", NodeCount: 2, Length: 0}, l)
}

func TestParseLineEdge(t *testing.T) {
	l, err := ParseLine([]byte("E\t0\tn1\t+\tn2\t+"))
	require.NoError(t, err)
	require.Equal(t, Edge{Offset: 0, FromNode: "n1", FromDir: true, ToNode: "n2", ToDir: true}, l)
}

func TestParseLineAlignment(t *testing.T) {
	l, err := ParseLine([]byte("S\tr1\t+\t0\t3\t"))
	require.NoError(t, err)
	a, ok := l.(Alignment)
	require.True(t, ok)
	require.Equal(t, "r1", string(a.ReadID))
	require.True(t, a.Direction)
	require.Equal(t, uint64(0), a.Offset)
	require.Equal(t, uint64(3), a.Length)
	require.Equal(t, uint64(3), a.OriginalLength)
}

func TestParseLineAlignmentWithPayload(t *testing.T) {
	l, err := ParseLine([]byte("S\tr1\t-\t1\t4\tACGT"))
	require.NoError(t, err)
	a := l.(Alignment)
	require.False(t, a.Direction)
	require.Equal(t, uint64(1), a.Offset)
	require.Equal(t, uint64(4), a.Length)
}

func TestParseLineRejectsUnknownSigil(t *testing.T) {
	_, err := ParseLine([]byte("X\tgarbage"))
	require.Error(t, err)
}

func TestParseLineRejectsBadDirection(t *testing.T) {
	_, err := ParseLine([]byte("E\t0\tn1\t?\tn2\t+"))
	require.Error(t, err)
}

func TestParseLineRejectsNonNumeric(t *testing.T) {
	_, err := ParseLine([]byte(">c1\tnodes=x\tlen=0"))
	require.Error(t, err)
}

func TestFormatLineRoundTripsEdge(t *testing.T) {
	e := Edge{Offset: 7, FromNode: "n1", FromDir: true, ToNode: "n2", ToDir: false}
	got := string(FormatLine(e))
	require.Equal(t, "E\t7\tn1\t+\tn2\t-", got)
	reparsed, err := ParseLine([]byte(got))
	require.NoError(t, err)
	require.Equal(t, e, reparsed)
}

func TestFormatLineRoundTripsContig(t *testing.T) {
	c := Contig{Name: "c1", NodeCount: 2, Length: 5}
	got := string(FormatLine(c))
	require.Equal(t, ">c1\tnodes=2\tlen=5", got)
	reparsed, err := ParseLine([]byte(got))
	require.NoError(t, err)
	require.Equal(t, c, reparsed)
}

func TestFormatLineAlignmentEndsWithTrailingTab(t *testing.T) {
	a := Alignment{ReadID: []byte("r1"), Direction: true, Offset: 0, Length: 5, OriginalLength: 3}
	got := FormatLine(a)
	require.Equal(t, "S\tr1\t+\t0\t5\t", string(got))
	withPayload := append(got, []byte("AACCG")...)
	require.Equal(t, "S\tr1\t+\t0\t5\tAACCG", string(withPayload))
}
