package qmx

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorizedAndScalarPackAgree(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(1))

	for _, e := range widthTable {
		if e.width == 0 || e.width == 16 {
			continue // width 0 has no payload; width 16 is not lane-packed.
		}
		values := make([]uint32, e.intsPerBlock)
		mask := uint32(maskForWidth(e.width))
		for i := range values {
			values[i] = rng.Uint32() & mask
		}

		vecOut := make([]byte, e.payloadBytes)
		scalarOut := make([]byte, e.payloadBytes)
		packLaneGroupVectorized(vecOut, values, e.intsPerBlock/4, e.width)
		packLaneGroupScalar(scalarOut, values, e.intsPerBlock/4, e.width)
		assert.Equal(vecOut, scalarOut, "width=%d", e.width)

		vecDecoded := make([]uint32, e.intsPerBlock)
		scalarDecoded := make([]uint32, e.intsPerBlock)
		unpackLaneGroupVectorized(vecDecoded, vecOut, e.intsPerBlock/4, e.width)
		unpackLaneGroupScalar(scalarDecoded, scalarOut, e.intsPerBlock/4, e.width)
		assert.Equal(values, vecDecoded, "width=%d", e.width)
		assert.Equal(values, scalarDecoded, "width=%d", e.width)
	}
}

func TestWidth16Sequential(t *testing.T) {
	assert := assert.New(t)
	values := []uint32{0, 1, 0xFFFF, 42, 7, 999, 65535, 12}
	buf := make([]byte, 16)
	narrowU32x8ToU16(buf, values)
	out := make([]uint32, 8)
	zeroExtendU16x8(out, buf)
	assert.Equal(values, out)
}

func TestSelectorByteRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for id := 0; id < 15; id++ {
		for batch := 1; batch <= 16; batch++ {
			sel := selectorByte(id, batch)
			assert.Equal(id, int(sel>>4))
			assert.Equal(batch, int((^sel)&0x0F)+1)
		}
	}
}

func TestBlockSourcePadsShortTail(t *testing.T) {
	assert := assert.New(t)
	c := NewCodec()
	src := []uint32{10, 20, 30}
	values := c.blockSource(src, 0, len(src), 8)
	assert.Equal([]uint32{10, 20, 30, 0, 0, 0, 0, 0}, values)
}
