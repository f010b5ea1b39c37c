package qmx

// lane128 is a 128-bit SIMD register modelled as four interleaved
// 32-bit lanes, little-endian within each lane (spec.md §6.1, §9
// "SIMD abstraction"). It is the portable stand-in for the vector
// pack/unpack/zero-extend intrinsics a native SIMD backend would use,
// in the spirit of the lane-oriented vector APIs of the Go ports of
// Highway; QMX only ever needs this one 128-bit-as-4-lanes shape.
type lane128 [4]uint32

// loadLane128 reads a 128-bit register from the front of b.
func loadLane128(b []byte) lane128 {
	return lane128{
		bo.Uint32(b[0:4]),
		bo.Uint32(b[4:8]),
		bo.Uint32(b[8:12]),
		bo.Uint32(b[12:16]),
	}
}

// store writes the register to the front of b.
func (v lane128) store(b []byte) {
	bo.PutUint32(b[0:4], v[0])
	bo.PutUint32(b[4:8], v[1])
	bo.PutUint32(b[8:12], v[2])
	bo.PutUint32(b[12:16], v[3])
}

// zeroExtendU16x8 widens 8 consecutive little-endian u16 values into
// 8 u32 lanes (spec.md §6.1 width-16: "the decoder zero-extends each
// to u32"). It does not return a lane128 since width 16 is not
// lane-interleaved.
func zeroExtendU16x8(dst []uint32, b []byte) {
	for i := range dst {
		dst[i] = uint32(bo.Uint16(b[i*2 : i*2+2]))
	}
}

// narrowU32x8ToU16 is the pack-side inverse of zeroExtendU16x8.
func narrowU32x8ToU16(b []byte, src []uint32) {
	for i, v := range src {
		bo.PutUint16(b[i*2:i*2+2], uint16(v))
	}
}
