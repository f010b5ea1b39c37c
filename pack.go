package qmx

// packLaneGroup is a package-level function variable so simd.go can
// swap in a CPU-feature-appropriate implementation at init time, the
// same dispatch pattern the teacher (Akron/fastpfor-go/simdpack.go's
// packLanes/unpackLanes) uses.
var packLaneGroup func(dst []byte, values []uint32, laneLength, width int) = packLaneGroupVectorized

// emitPayload packs every block in plan into dst, coalescing runs of
// up to 16 consecutive same-width blocks under one selector byte
// (spec.md §4.3), and stages the selector stream in c.selectors for
// Encode to reverse onto the tail. It returns the number of payload
// bytes written.
func (c *Codec) emitPayload(dst []byte, src []uint32, plan []blockPlan) int {
	c.selectors = c.selectors[:0]
	n := len(src)
	payloadOff := 0
	i := 0
	for i < len(plan) {
		width := plan[i].width
		batch := 1
		for i+batch < len(plan) && plan[i+batch].width == width && batch < 16 {
			batch++
		}
		entry := entryForWidth(width)
		c.selectors = append(c.selectors, selectorByte(entry.id, batch))
		for b := 0; b < batch; b++ {
			start := plan[i+b].start
			c.packBlock(dst[payloadOff:payloadOff+entry.payloadBytes], src, start, n, entry)
			payloadOff += entry.payloadBytes
		}
		i += batch
	}
	return payloadOff
}

// selectorByte builds one selector byte from a width-id and a batch
// count in 1..16 (spec.md §3.1, §6.1): the high nibble names the
// width, the low nibble stores batch-1 bit-inverted.
func selectorByte(widthID, batch int) byte {
	return byte(widthID<<4) | byte((^(batch-1))&0x0F)
}

// blockSource returns the blockLen values starting at start, reading
// from src when the whole block is available, or from the Codec's
// overflow scratch (zero-padded) when the block's tail would run past
// len(src) (spec.md §4.3).
func (c *Codec) blockSource(src []uint32, start, n, blockLen int) []uint32 {
	if start+blockLen <= n {
		return src[start : start+blockLen]
	}
	avail := 0
	if start < n {
		avail = n - start
	}
	copy(c.overflow[:avail], src[start:n])
	clear(c.overflow[avail:blockLen])
	return c.overflow[:blockLen]
}

// packBlock writes one block's payload at the given width.
func (c *Codec) packBlock(dst []byte, src []uint32, start, n int, entry widthEntry) {
	if entry.width == 0 {
		return // a run-of-ones block carries no payload at all.
	}
	values := c.blockSource(src, start, n, entry.intsPerBlock)
	if entry.width == 16 {
		narrowU32x8ToU16(dst, values)
		return
	}
	packLaneGroup(dst, values, entry.intsPerBlock/4, entry.width)
}

// maskForWidth returns the bitmask that keeps the low `width` bits of
// a value (width in 1..32).
func maskForWidth(width int) uint64 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return (uint64(1) << uint(width)) - 1
}

// packLaneGroupVectorized packs laneLength*4 values at the given width
// into dst, advancing all four interleaved lanes together one source
// index at a time (spec.md §6.1: "four interleaved 32-bit lanes
// packed into a 128-bit word"). It is the generalization of the
// teacher's packLaneInterleaved (Akron/fastpfor-go/fastpfor.go) from a
// fixed laneLength of 32 to the variable per-width laneLength QMX
// needs, and from one lane at a time to all four lanes at once via
// lane128 (see vector.go and DESIGN.md).
func packLaneGroupVectorized(dst []byte, values []uint32, laneLength, width int) {
	mask := maskForWidth(width)
	var acc [4]uint64
	bitsInAcc := 0
	outOff := 0
	for i := 0; i < laneLength; i++ {
		for lane := 0; lane < 4; lane++ {
			acc[lane] |= (uint64(values[lane+i*4]) & mask) << bitsInAcc
		}
		bitsInAcc += width
		for bitsInAcc >= 32 {
			var word lane128
			for lane := 0; lane < 4; lane++ {
				word[lane] = uint32(acc[lane])
				acc[lane] >>= 32
			}
			word.store(dst[outOff:])
			outOff += 16
			bitsInAcc -= 32
		}
	}
	if bitsInAcc > 0 {
		var word lane128
		for lane := 0; lane < 4; lane++ {
			word[lane] = uint32(acc[lane])
		}
		word.store(dst[outOff:])
	}
}

// packLaneGroupScalar packs the same four-lanes-interleaved-into-16-byte
// layout as packLaneGroupVectorized, one lane at a time instead of all
// four per step, for targets where the grouped form buys nothing
// (spec.md §9: "a scalar fallback with identical output"). The two
// paths must produce byte-identical output (see TestVectorizedAndScalarPackAgree),
// which pins this function's accumulator-and-drain technique to the
// same one Akron/fastpfor-go/fastpfor.go's packLaneInterleaved uses:
// this is intentionally a close port of that function rather than an
// independent design, since the wire layout itself — not just the
// algorithm idea — has to match.
func packLaneGroupScalar(dst []byte, values []uint32, laneLength, width int) {
	mask := maskForWidth(width)
	for lane := 0; lane < 4; lane++ {
		var acc uint64
		bitsInAcc := 0
		outOff := lane * 4
		for i := 0; i < laneLength; i++ {
			acc |= (uint64(values[lane+i*4]) & mask) << bitsInAcc
			bitsInAcc += width
			for bitsInAcc >= 32 {
				bo.PutUint32(dst[outOff:], uint32(acc))
				outOff += 16
				acc >>= 32
				bitsInAcc -= 32
			}
		}
		if bitsInAcc > 0 {
			bo.PutUint32(dst[outOff:], uint32(acc))
		}
	}
}
