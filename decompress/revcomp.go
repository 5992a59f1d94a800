package decompress

import "fmt"

// UnrecognizedBaseError reports a byte encountered during reverse
// complementation that isn't one of the recognized DNA bases. Per spec, an
// unrecognized base is an invariant violation, not a recoverable condition.
type UnrecognizedBaseError struct {
	Base byte
}

func (e UnrecognizedBaseError) Error() string {
	return fmt.Sprintf("reverse complement: unrecognized base %q", e.Base)
}

var complementTable = buildComplementTable()

func buildComplementTable() [256]byte {
	var t [256]byte
	pairs := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'N': 'N'}
	for b, comp := range pairs {
		t[b] = comp
	}
	return t
}

func isRecognizedBase(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G', 'N':
		return true
	default:
		return false
	}
}

// ReverseComplement writes the reverse complement of src into dst, which
// must have the same length as src. Recognized bases are A/T, C/G, N/N; any
// other byte is fatal, unlike the table-driven reverse complement used
// elsewhere in this codebase family, which maps unrecognized bytes to 'N'
// rather than failing.
func ReverseComplement(dst, src []byte) error {
	if len(dst) != len(src) {
		panic("decompress: ReverseComplement requires len(dst) == len(src)")
	}
	n := len(src)
	for i, j := 0, n-1; i < n; i, j = i+1, j-1 {
		b := src[j]
		if !isRecognizedBase(b) {
			return UnrecognizedBaseError{Base: b}
		}
		dst[i] = complementTable[b]
	}
	return nil
}
