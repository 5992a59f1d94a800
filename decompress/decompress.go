// Package decompress inverts homopolymer compression: it maps an
// offset/limit pair in compressed (HoCo) coordinate space to the
// corresponding offsets in the uncompressed sequence that produced it, and
// reverse-complements decompressed alignment payloads.
package decompress

// Decompress maps a compressed offset/limit pair to uncompressed
// coordinates, given the uncompressed byte sequence seq that was collapsed
// to produce the compressed coordinate space.
//
// A compressed position advances by one only where consecutive bytes of seq
// differ; a run of equal bytes collapses to a single compressed position.
// Decompress walks seq once, tracking a compressed counter and an
// uncompressed cursor, recording the cursor when the counter first reaches
// each target.
//
// Preconditions: compressedOffset <= compressedLimit, both within the
// compressed length of seq. Out-of-range targets map to len(seq); there are
// no error returns.
func Decompress(compressedOffset, compressedLimit uint64, seq []byte) (shiftedOffset, shiftedLimit uint64) {
	n := uint64(len(seq))
	offsetPos, c, found := scan(seq, 0, 0, compressedOffset)
	if !found {
		return n, n
	}
	shiftedOffset = offsetPos
	limitPos, _, found := scan(seq, offsetPos, c, compressedLimit)
	if !found {
		return shiftedOffset, n
	}
	return shiftedOffset, limitPos
}

// scan walks seq pairs (seq[i], seq[i+1]) starting at uncompressed position
// u with compressed counter c, stopping as soon as c reaches target and
// reporting the uncompressed position at that point along with the
// compressed counter's value there (equal to target, returned so the caller
// can resume a later scan without restarting from the beginning).
//
// A trailing run never contributes a differing pair, so the pair walk alone
// cannot observe the compressed counter reaching the sequence's last
// position; after the walk, one more comparison against the counter's final
// value catches that case and reports it at len(seq)-1. found is false only
// when target exceeds even that final position (one past the last run).
func scan(seq []byte, u, c, target uint64) (pos, atC uint64, found bool) {
	n := uint64(len(seq))
	if n == 0 {
		return 0, c, c == target
	}
	i := u
	for ; i+1 < n; i++ {
		if c == target {
			return i, c, true
		}
		if seq[i] != seq[i+1] {
			c++
		}
	}
	if c == target {
		return n - 1, c, true
	}
	return 0, c, false
}
