package qmx

// unpackLaneGroup mirrors packLaneGroup; see simd.go for how the two
// implementations (vectorized / scalar) are selected.
var unpackLaneGroup func(dst []uint32, payload []byte, laneLength, width int) = unpackLaneGroupVectorized

// decodeStream implements the selector-dispatched decoder (spec.md
// §4.5): two cursors converge from opposite ends of src, `in` reading
// payload words forward and `keys` reading selector bytes backward.
// The loop's `in <= keys` bound (not `<`) matters: a final selector at
// position 0 naming a zero-payload width (width-id 0) must still
// execute once even though it consumes no payload bytes.
func decodeStream(dst []uint32, src []byte) {
	if len(src) == 0 {
		return
	}
	in := 0
	keys := len(src) - 1
	outOff := 0
	for in <= keys {
		sel := src[keys]
		keys--

		widthID := int(sel >> 4)
		if widthID >= len(widthTable) {
			// Illegal selector (spec.md §7): a benign no-op that
			// advances `in` by a single byte; undefined output
			// follows for whatever block body would have run.
			in++
			continue
		}
		batch := int((^sel)&0x0F) + 1
		entry := widthTable[widthID]

		for b := 0; b < batch; b++ {
			unpackBlock(dst, outOff, src, in, entry)
			in += entry.payloadBytes
			outOff += entry.intsPerBlock
		}
	}
}

// unpackBlock decodes one block into dst[outOff:outOff+entry.intsPerBlock].
func unpackBlock(dst []uint32, outOff int, src []byte, in int, entry widthEntry) {
	switch entry.width {
	case 0:
		ones := dst[outOff : outOff+entry.intsPerBlock]
		for i := range ones {
			ones[i] = 1
		}
	case 16:
		zeroExtendU16x8(dst[outOff:outOff+entry.intsPerBlock], src[in:in+entry.payloadBytes])
	default:
		unpackLaneGroup(dst[outOff:outOff+entry.intsPerBlock], src[in:in+entry.payloadBytes], entry.intsPerBlock/4, entry.width)
	}
}

// unpackLaneGroupVectorized is the decode-side mirror of
// packLaneGroupVectorized: it advances all four interleaved lanes
// together, refilling a shared bit accumulator from one lane128 at a
// time (spec.md §4.5, §6.1).
func unpackLaneGroupVectorized(dst []uint32, payload []byte, laneLength, width int) {
	mask := uint32(maskForWidth(width))
	var acc [4]uint64
	bitsInAcc := 0
	inOff := 0
	for i := 0; i < laneLength; i++ {
		for bitsInAcc < width {
			word := loadLane128(payload[inOff:])
			for lane := 0; lane < 4; lane++ {
				acc[lane] |= uint64(word[lane]) << bitsInAcc
			}
			inOff += 16
			bitsInAcc += 32
		}
		for lane := 0; lane < 4; lane++ {
			dst[lane+i*4] = uint32(acc[lane]) & mask
			acc[lane] >>= width
		}
		bitsInAcc -= width
	}
}

// unpackLaneGroupScalar is the portable fallback counterpart of
// packLaneGroupScalar.
func unpackLaneGroupScalar(dst []uint32, payload []byte, laneLength, width int) {
	mask := uint32(maskForWidth(width))
	for lane := 0; lane < 4; lane++ {
		var acc uint64
		bitsInAcc := 0
		inOff := lane * 4
		for i := 0; i < laneLength; i++ {
			for bitsInAcc < width {
				acc |= uint64(bo.Uint32(payload[inOff:inOff+4])) << bitsInAcc
				inOff += 16
				bitsInAcc += 32
			}
			dst[lane+i*4] = uint32(acc) & mask
			acc >>= width
			bitsInAcc -= width
		}
	}
}
