// Package pipeline wires the reader, parser, decorator, decompressor,
// sorter and writer stages into the streaming layout translation described
// in this repository: it reads a HoCo-space contig layout, decorates and
// decompresses its alignments against a FASTA read index, restores input
// order, and writes the translated layout with deferred contig length
// fix-up.
package pipeline

import "github.com/sebschmi/wtdbg2-homopolymer-decompression/layoutline"

// item is the unit of work passed between the parser/decorator/decompressor
// stages and the sorter. payload carries an alignment's decompressed
// sequence bytes; it is nil for Contig and Edge lines.
type item struct {
	ctx     layoutline.LineContext
	line    layoutline.Line
	payload []byte
}
