// Package layoutline implements the line grammar of a wtdbg2 .ctg.lay contig
// layout: parsing, formatting, and the per-record ordering key used to
// restore input order after out-of-order processing.
package layoutline

// Line is one record of a contig layout file: a contig header, an edge, or
// an alignment. Concrete types implement Line by embedding no state of
// their own; the type switch on the concrete type is the intended way to
// consume a Line.
type Line interface {
	isLine()
}

// Contig is a contig header line: ">NAME\tnodes=<u64>\tlen=<u64>".
//
// Length is rewritten by the pipeline once the contig's decompressed length
// is known; the value produced by ParseLine is the HoCo-space length as written
// by the assembler and is not meaningful on its own.
type Contig struct {
	Name      string
	NodeCount uint64
	Length    uint64
}

func (Contig) isLine() {}

// Edge is an "E" line connecting two assembly nodes. Offset is rewritten by
// the pipeline to reflect decompressed coordinates.
type Edge struct {
	Offset    uint64
	FromNode  string
	FromDir   bool // true = '+', false = '-'
	ToNode    string
	ToDir     bool
}

func (Edge) isLine() {}

// Alignment is an "S" line mapping a region of a read onto the current
// edge. Offset and Length are rewritten to decompressed coordinates;
// OriginalLength preserves the HoCo-space length so that edge offsets can
// be scaled proportionally to how much each alignment expanded.
type Alignment struct {
	ReadID         []byte
	Direction      bool // true = '+', false = '-'
	Offset         uint64
	Length         uint64
	OriginalLength uint64
}

func (Alignment) isLine() {}
