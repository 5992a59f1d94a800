package pipeline

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/fastaindex"
)

func buildTestIndex(t *testing.T, fasta string) *fastaindex.Index {
	t.Helper()
	scratch, err := os.CreateTemp(t.TempDir(), "fastaindex-scratch")
	require.NoError(t, err)
	t.Cleanup(func() { scratch.Close() })
	ix, err := fastaindex.Build(strings.NewReader(fasta), scratch, 4096)
	assert.NoError(t, err)
	return ix
}

func runTestPipeline(t *testing.T, layout, fasta string) string {
	t.Helper()
	ix := buildTestIndex(t, fasta)
	contigScratch, err := os.CreateTemp(t.TempDir(), "contig-scratch")
	require.NoError(t, err)
	t.Cleanup(func() { contigScratch.Close() })

	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.QueueSize = 8
	err = Run(strings.NewReader(layout), &out, ix, contigScratch, cfg)
	require.NoError(t, err)
	return out.String()
}

func TestPipelineForwardAlignment(t *testing.T) {
	layout := ">c1\tnodes=2\tlen=0\n" +
		"E\t0\tn1\t+\tn2\t+\n" +
		"S\tr1\t+\t0\t3\t\n"
	fasta := ">r1\nAACCG\n"

	got := runTestPipeline(t, layout, fasta)
	require.Contains(t, got, "S\tr1\t+\t0\t5\tAACCG\n")
	require.Contains(t, got, ">c1\tnodes=2\tlen=5\n")
	require.Contains(t, got, "E\t0\tn1\t+\tn2\t+\n")
}

func TestPipelineReverseAlignment(t *testing.T) {
	layout := ">c1\tnodes=2\tlen=0\n" +
		"E\t0\tn1\t+\tn2\t+\n" +
		"S\tr1\t-\t0\t3\t\n"
	fasta := ">r1\nAACCG\n"

	got := runTestPipeline(t, layout, fasta)
	require.Contains(t, got, "S\tr1\t-\t0\t5\tCGGTT\n")
}

func TestPipelinePreservesOrderAcrossContigs(t *testing.T) {
	layout := ">c1\tnodes=1\tlen=0\n" +
		"E\t0\tn1\t+\tn2\t+\n" +
		"S\tr1\t+\t0\t2\t\n" +
		">c2\tnodes=1\tlen=0\n" +
		"E\t0\tn3\t+\tn4\t+\n" +
		"S\tr2\t+\t0\t1\t\n"
	fasta := ">r1\nAACC\n>r2\nG\n"

	got := runTestPipeline(t, layout, fasta)
	c1 := strings.Index(got, ">c1")
	c2 := strings.Index(got, ">c2")
	require.True(t, c1 >= 0 && c2 > c1, "expected c1 to be written before c2, got: %s", got)
}

func TestPipelineRejectsMissingRead(t *testing.T) {
	layout := ">c1\tnodes=1\tlen=0\n" +
		"E\t0\tn1\t+\tn2\t+\n" +
		"S\tmissing\t+\t0\t3\t\n"
	fasta := ">r1\nAACCG\n"

	ix := buildTestIndex(t, fasta)
	contigScratch, err := os.CreateTemp(t.TempDir(), "contig-scratch")
	require.NoError(t, err)
	t.Cleanup(func() { contigScratch.Close() })

	var out bytes.Buffer
	err = Run(strings.NewReader(layout), &out, ix, contigScratch, DefaultConfig())
	require.Error(t, err)
}
