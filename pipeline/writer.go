package pipeline

import (
	"bufio"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/sebschmi/wtdbg2-homopolymer-decompression/layoutline"
)

// writer implements the output staging and length fix-up described in this
// repository: edges and alignments for the contig currently being assembled
// are buffered in a scratch file until the contig's total length is known,
// at which point the finalized header is flushed followed by the scratch
// bytes.
//
// The per-edge running sums (alignmentCount, originalAlignmentLengthSum,
// shiftedAlignmentLengthSum) are reset both when a new contig opens and when
// a new edge opens; an edge's offset is rewritten using the sums still held
// from the edge that precedes it, which is zero for every contig's first
// edge. That first-edge case is treated as an identity scaling (no
// adjustment) rather than a division by zero.
type writer struct {
	out     *bufio.Writer
	scratch *os.File
	scratchW *bufio.Writer

	havePending  bool
	pendingContig layoutline.Contig

	originalPreviousOffset uint64
	shiftedPreviousOffset  uint64
	currentLastEdgeLength  uint64

	alignmentCount             uint64
	originalAlignmentLengthSum uint64
	shiftedAlignmentLengthSum  uint64
}

func newWriter(out io.Writer, scratch *os.File, bufferSize int) *writer {
	return &writer{
		out:      bufio.NewWriterSize(out, bufferSize),
		scratch:  scratch,
		scratchW: bufio.NewWriterSize(scratch, bufferSize),
	}
}

// process applies the §4.5 rule for it's line kind. It must be called with
// records in input order, exactly as the sorter releases them.
func (w *writer) process(it item) error {
	switch line := it.line.(type) {
	case layoutline.Contig:
		return w.processContig(line)
	case layoutline.Edge:
		return w.processEdge(line)
	case layoutline.Alignment:
		return w.processAlignment(line, it.payload)
	default:
		return errors.Errorf("writer: unknown line type %T", it.line)
	}
}

func (w *writer) processContig(c layoutline.Contig) error {
	if err := w.finalizePending(); err != nil {
		return err
	}
	w.resetContigState()
	w.havePending = true
	w.pendingContig = c
	return nil
}

func (w *writer) resetContigState() {
	w.originalPreviousOffset = 0
	w.shiftedPreviousOffset = 0
	w.currentLastEdgeLength = 0
	w.resetEdgeState()
}

func (w *writer) resetEdgeState() {
	w.alignmentCount = 0
	w.originalAlignmentLengthSum = 0
	w.shiftedAlignmentLengthSum = 0
}

func (w *writer) processEdge(e layoutline.Edge) error {
	if !w.havePending {
		return errors.Errorf("edge record with no contig pending")
	}
	originalOffset := e.Offset

	ratio := 1.0
	if w.originalAlignmentLengthSum != 0 {
		ratio = float64(w.shiftedAlignmentLengthSum) / float64(w.originalAlignmentLengthSum)
	}
	delta := float64(originalOffset) - float64(w.originalPreviousOffset)
	newOffset := float64(w.shiftedPreviousOffset) + math.Round(delta*ratio)
	if newOffset < 0 {
		newOffset = 0
	}
	e.Offset = uint64(math.Round(newOffset))

	w.originalPreviousOffset = originalOffset
	w.shiftedPreviousOffset = e.Offset
	w.resetEdgeState()

	if _, err := w.scratchW.Write(layoutline.FormatLine(e)); err != nil {
		return errors.Wrap(err, "writing edge to scratch file")
	}
	if err := w.scratchW.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "writing edge to scratch file")
	}
	return nil
}

func (w *writer) processAlignment(a layoutline.Alignment, payload []byte) error {
	if !w.havePending {
		return errors.Errorf("alignment record with no contig pending")
	}
	w.alignmentCount++
	w.originalAlignmentLengthSum += a.OriginalLength
	w.shiftedAlignmentLengthSum += a.Length
	w.currentLastEdgeLength = uint64(math.Round(float64(w.shiftedAlignmentLengthSum) / float64(w.alignmentCount)))

	if _, err := w.scratchW.Write(layoutline.FormatLine(a)); err != nil {
		return errors.Wrap(err, "writing alignment to scratch file")
	}
	if _, err := w.scratchW.Write(payload); err != nil {
		return errors.Wrap(err, "writing alignment payload to scratch file")
	}
	if err := w.scratchW.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "writing alignment to scratch file")
	}
	return nil
}

// finalizePending writes the pending contig's header (with its length fixed
// up) and the accumulated scratch bytes to the output, then truncates the
// scratch file for the next contig.
func (w *writer) finalizePending() error {
	if !w.havePending {
		return nil
	}
	w.pendingContig.Length = w.shiftedPreviousOffset + w.currentLastEdgeLength

	if _, err := w.out.Write(layoutline.FormatLine(w.pendingContig)); err != nil {
		return errors.Wrap(err, "writing contig header")
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "writing contig header")
	}

	if err := w.scratchW.Flush(); err != nil {
		return errors.Wrap(err, "flushing contig scratch file")
	}
	if _, err := w.scratch.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewinding contig scratch file")
	}
	if _, err := io.Copy(w.out, w.scratch); err != nil {
		return errors.Wrap(err, "copying contig scratch file to output")
	}
	if err := w.scratch.Truncate(0); err != nil {
		return errors.Wrap(err, "truncating contig scratch file")
	}
	if _, err := w.scratch.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewinding contig scratch file")
	}
	w.scratchW.Reset(w.scratch)

	w.havePending = false
	return nil
}

// close finalizes any still-pending contig and flushes the output writer.
func (w *writer) close() error {
	if err := w.finalizePending(); err != nil {
		return err
	}
	return errors.Wrap(w.out.Flush(), "flushing output")
}
