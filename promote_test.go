package qmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsNeededForSpecialCases(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, bitsNeededFor(1))
	assert.Equal(1, bitsNeededFor(0))
	assert.Equal(32, bitsNeededFor(^uint32(0)))
}

func TestBitsNeededForMonotonic(t *testing.T) {
	assert := assert.New(t)
	cases := []struct {
		v    uint32
		want int
	}{
		{2, 2},
		{3, 2},
		{4, 3},
		{255, 8},
		{256, 9},
		{1 << 20, 21},
		{1<<21 - 1, 21},
		{1 << 21, 32},
		{1<<16 - 1, 16},
	}
	for _, c := range cases {
		assert.Equal(c.want, bitsNeededFor(c.v), "v=%d", c.v)
	}
}

func TestPromoteWidthsStrideFourMax(t *testing.T) {
	assert := assert.New(t)
	widths := []byte{1, 1, 3, 1, 4, 4, 4, 4}
	promoteWidths(widths, len(widths))
	assert.Equal([]byte{3, 3, 3, 3, 4, 4, 4, 4}, widths)
}

func TestPlanBlocksTailUsesSmallestFittingBlock(t *testing.T) {
	assert := assert.New(t)
	// 2 small values: they fit width-32's 4-int block with padding, the
	// smallest block any width offers, and the tail rule picks it since
	// remain <= 4.
	n := 2
	widths := make([]byte, n+2*maxBlockSize)
	classifyAll(widths[:n], []uint32{5, 6})
	promoteWidths(widths, n)
	plan := planBlocks(widths, n)
	assert.Len(plan, 1)
	assert.Equal(32, plan[0].width)
}

func TestPlanBlocksRunOfOnes(t *testing.T) {
	assert := assert.New(t)
	n := 256
	src := make([]uint32, n)
	for i := range src {
		src[i] = 1
	}
	widths := make([]byte, n+2*maxBlockSize)
	classifyAll(widths[:n], src)
	promoteWidths(widths, n)
	plan := planBlocks(widths, n)
	assert.Len(plan, 1)
	assert.Equal(0, plan[0].width)
}

func TestPlanBlocksPromotesOnOverflow(t *testing.T) {
	assert := assert.New(t)
	// A width-5 outlier in the final 4-group of width-2 values forces
	// promotion of that block past width 2, 3 and 4 to width 5 (the
	// first legal width whose 24-int block keeps every 4-group inside
	// it no wider than the block's own width).
	n := 32
	src := make([]uint32, n)
	for i := range src {
		src[i] = 3 // bitsNeededFor(3) == 2
	}
	src[n-1] = 31 // bitsNeededFor(31) == 5
	widths := make([]byte, n+2*maxBlockSize)
	classifyAll(widths[:n], src)
	promoteWidths(widths, n)
	plan := planBlocks(widths, n)
	assert.Equal(0, plan[0].start)
	assert.Equal(5, plan[0].width)
	// The block only covers the first intsPerBlockOf(5) integers; the
	// rest is planned separately.
	assert.Equal(intsPerBlockOf(5), plan[1].start)
}
