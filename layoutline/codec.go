package layoutline

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

const (
	sigilContig = '>'
	sigilEdge   = 'E'
	sigilAlign  = 'S'
)

// ParseLine recognises a raw layout line by its first byte and decodes it
// into the corresponding Line. Fields are TAB-separated. Malformed input -
// wrong leading sigil, a missing field, a non-numeric numeric field, or an
// unexpected direction token - is reported as an error; the caller is
// expected to treat it as fatal, per the layout grammar's contract.
func ParseLine(line []byte) (Line, error) {
	if len(line) == 0 {
		return nil, errors.Errorf("empty layout line")
	}
	switch line[0] {
	case sigilContig:
		return parseContig(line)
	case sigilEdge:
		return parseEdge(line)
	case sigilAlign:
		return parseAlignment(line)
	default:
		return nil, errors.Errorf("unrecognized line sigil %q", line[0])
	}
}

func parseContig(line []byte) (Contig, error) {
	fields := bytes.Split(line[1:], []byte{'\t'})
	if len(fields) != 3 {
		return Contig{}, errors.Errorf("contig line: want 3 tab-separated fields, got %d", len(fields))
	}
	nodeCount, err := parseUintField(fields[1], "nodes=")
	if err != nil {
		return Contig{}, errors.Wrap(err, "contig line")
	}
	length, err := parseUintField(fields[2], "len=")
	if err != nil {
		return Contig{}, errors.Wrap(err, "contig line")
	}
	return Contig{Name: string(fields[0]), NodeCount: nodeCount, Length: length}, nil
}

func parseEdge(line []byte) (Edge, error) {
	fields := bytes.Split(line, []byte{'\t'})
	if len(fields) != 6 {
		return Edge{}, errors.Errorf("edge line: want 6 tab-separated fields, got %d", len(fields))
	}
	offset, err := parseUint(fields[1])
	if err != nil {
		return Edge{}, errors.Wrap(err, "edge line: offset")
	}
	fromDir, err := parseDirection(fields[3])
	if err != nil {
		return Edge{}, errors.Wrap(err, "edge line: from direction")
	}
	toDir, err := parseDirection(fields[5])
	if err != nil {
		return Edge{}, errors.Wrap(err, "edge line: to direction")
	}
	return Edge{
		Offset:   offset,
		FromNode: string(fields[2]),
		FromDir:  fromDir,
		ToNode:   string(fields[4]),
		ToDir:    toDir,
	}, nil
}

func parseAlignment(line []byte) (Alignment, error) {
	// read_id, direction, offset, length, then the remainder of the line is
	// the raw sequence payload - split only the first 5 fields.
	fields := bytes.SplitN(line, []byte{'\t'}, 6)
	if len(fields) != 6 {
		return Alignment{}, errors.Errorf("alignment line: want at least 6 tab-separated fields, got %d", len(fields))
	}
	direction, err := parseDirection(fields[2])
	if err != nil {
		return Alignment{}, errors.Wrap(err, "alignment line: direction")
	}
	offset, err := parseUint(fields[3])
	if err != nil {
		return Alignment{}, errors.Wrap(err, "alignment line: offset")
	}
	length, err := parseUint(fields[4])
	if err != nil {
		return Alignment{}, errors.Wrap(err, "alignment line: length")
	}
	readID := make([]byte, len(fields[1]))
	copy(readID, fields[1])
	return Alignment{
		ReadID:         readID,
		Direction:      direction,
		Offset:         offset,
		Length:         length,
		OriginalLength: length,
	}, nil
}

func parseDirection(field []byte) (bool, error) {
	switch string(field) {
	case "+":
		return true, nil
	case "-":
		return false, nil
	default:
		return false, errors.Errorf("unrecognized direction token %q", field)
	}
}

func parseUintField(field []byte, prefix string) (uint64, error) {
	if !bytes.HasPrefix(field, []byte(prefix)) {
		return 0, errors.Errorf("want field prefixed %q, got %q", prefix, field)
	}
	return parseUint(field[len(prefix):])
}

func parseUint(field []byte) (uint64, error) {
	n, err := strconv.ParseUint(string(field), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "non-numeric field %q", field)
	}
	return n, nil
}

// FormatLine serializes l back to the TAB-separated layout grammar.
// Alignment lines end with a trailing TAB so the caller can append the raw
// sequence payload in place, without an intervening separator.
func FormatLine(l Line) []byte {
	switch v := l.(type) {
	case Contig:
		return formatContig(v)
	case Edge:
		return formatEdge(v)
	case Alignment:
		return formatAlignment(v)
	default:
		panic(errors.Errorf("layoutline: FormatLine: unknown Line type %T", l))
	}
}

func formatContig(c Contig) []byte {
	var buf bytes.Buffer
	buf.WriteByte(sigilContig)
	buf.WriteString(c.Name)
	buf.WriteByte('\t')
	buf.WriteString("nodes=")
	buf.WriteString(strconv.FormatUint(c.NodeCount, 10))
	buf.WriteByte('\t')
	buf.WriteString("len=")
	buf.WriteString(strconv.FormatUint(c.Length, 10))
	return buf.Bytes()
}

func formatEdge(e Edge) []byte {
	var buf bytes.Buffer
	buf.WriteByte(sigilEdge)
	buf.WriteByte('\t')
	buf.WriteString(strconv.FormatUint(e.Offset, 10))
	buf.WriteByte('\t')
	buf.WriteString(e.FromNode)
	buf.WriteByte('\t')
	buf.WriteByte(directionByte(e.FromDir))
	buf.WriteByte('\t')
	buf.WriteString(e.ToNode)
	buf.WriteByte('\t')
	buf.WriteByte(directionByte(e.ToDir))
	return buf.Bytes()
}

func formatAlignment(a Alignment) []byte {
	var buf bytes.Buffer
	buf.WriteByte(sigilAlign)
	buf.WriteByte('\t')
	buf.Write(a.ReadID)
	buf.WriteByte('\t')
	buf.WriteByte(directionByte(a.Direction))
	buf.WriteByte('\t')
	buf.WriteString(strconv.FormatUint(a.Offset, 10))
	buf.WriteByte('\t')
	buf.WriteString(strconv.FormatUint(a.Length, 10))
	buf.WriteByte('\t')
	return buf.Bytes()
}

func directionByte(forward bool) byte {
	if forward {
		return '+'
	}
	return '-'
}
