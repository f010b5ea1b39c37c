package qmx

// DeltaEncode computes gaps between consecutive elements of src into dst
// (dst and src may alias), returning whether zigzag encoding was needed
// to keep every gap representable as a non-negative width.
//
// Callers use this to turn a sequence of document IDs into the
// non-negative d-gaps QMX-Improved's wire format expects (spec.md §1
// Non-goals: "inputs are assumed to have been pre-transformed into
// non-negative d-gaps by the caller"); original_source/src/lib.rs
// performs the equivalent transform before calling qmx_encode.
//
// A posting list's document IDs are always sorted, so the common case
// needs no zigzag at all: DeltaEncode checks that up front with a plain
// scan, then either takes a cheap backward gap pass (backward so that
// dst and src may alias) or, if it finds src is not sorted, takes the
// same backward pass under zigzag. This is a
// two-pass strategy rather than the single backward pass with an
// on-the-fly zigzag "catch-up" that a block codec needing one pass over
// fixed-size blocks would use; a posting-list gap stream sees the
// non-zigzag path on every call that matters, so the extra scan is cheap
// insurance for a case that almost never triggers the second pass.
func DeltaEncode(dst, src []uint32) bool {
	n := len(src)
	if n == 0 {
		return false
	}

	sorted := true
	for i := 1; i < n; i++ {
		if src[i] < src[i-1] {
			sorted = false
			break
		}
	}

	if sorted {
		for i := n - 1; i >= 1; i-- {
			dst[i] = src[i] - src[i-1]
		}
		dst[0] = src[0]
		return false
	}

	for i := n - 1; i >= 1; i-- {
		dst[i] = zigzagEncode32(int32(src[i] - src[i-1]))
	}
	dst[0] = zigzagEncode32(int32(src[0]))
	return true
}

// DeltaDecode reconstructs the prefix sums DeltaEncode produced. dst
// and deltas may alias.
func DeltaDecode(dst, deltas []uint32, useZigZag bool) {
	if useZigZag {
		var sum int64
		for i, gap := range deltas {
			sum += int64(zigzagDecode32(gap))
			dst[i] = uint32(sum)
		}
		return
	}
	var sum uint32
	for i, gap := range deltas {
		sum += gap
		dst[i] = sum
	}
}

// zigzagEncode32 maps a signed value onto the unsigned range so that
// small-magnitude negatives stay small after encoding: 0, -1, 1, -2, 2, …
// become 0, 1, 2, 3, 4, ….
func zigzagEncode32(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

// zigzagDecode32 is the inverse of zigzagEncode32.
func zigzagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}
