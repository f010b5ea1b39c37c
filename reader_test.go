package qmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeDocIDs(t *testing.T, docIDs []uint32) ([]byte, bool) {
	t.Helper()
	gaps := make([]uint32, len(docIDs))
	zigzag := DeltaEncode(gaps, docIDs)

	c := NewCodec()
	dst := make([]byte, len(gaps)*4+512)
	n := c.Encode(dst, gaps)
	return dst[:n], zigzag
}

func TestReaderReconstructsDocIDs(t *testing.T) {
	assert := assert.New(t)
	docIDs := []uint32{5, 9, 9, 100, 101, 500, 10000}
	buf, zigzag := encodeDocIDs(t, docIDs)
	assert.False(zigzag, "monotonically non-decreasing IDs never need zigzag")

	r := NewReader()
	assert.NoError(r.Load(buf, len(docIDs)))
	assert.Equal(len(docIDs), r.Len())

	got := r.Decode(nil)
	assert.Equal(docIDs, got)
}

func TestReaderSequentialIteration(t *testing.T) {
	assert := assert.New(t)
	docIDs := []uint32{1, 2, 4, 8, 16, 32}
	buf, _ := encodeDocIDs(t, docIDs)

	r := NewReader()
	assert.NoError(r.Load(buf, len(docIDs)))

	for i, want := range docIDs {
		v, pos, ok := r.Next()
		assert.True(ok)
		assert.Equal(i, pos)
		assert.Equal(want, v)
	}
	_, _, ok := r.Next()
	assert.False(ok)
}

func TestReaderSkipTo(t *testing.T) {
	assert := assert.New(t)
	docIDs := []uint32{1, 5, 9, 20, 21, 22, 100}
	buf, _ := encodeDocIDs(t, docIDs)

	r := NewReader()
	assert.NoError(r.Load(buf, len(docIDs)))

	v, pos, ok := r.SkipTo(10)
	assert.True(ok)
	assert.Equal(uint32(20), v)
	assert.Equal(3, pos)

	v, _, ok = r.SkipTo(21)
	assert.True(ok)
	assert.Equal(uint32(21), v)

	_, _, ok = r.SkipTo(1000)
	assert.False(ok)
}

func TestReaderNotLoaded(t *testing.T) {
	assert := assert.New(t)
	r := NewReader()
	_, err := r.Get(0)
	assert.ErrorIs(err, ErrNotLoaded)
	assert.Nil(r.Decode(nil))
}

func TestReaderGetOutOfRange(t *testing.T) {
	assert := assert.New(t)
	docIDs := []uint32{3, 4, 5}
	buf, _ := encodeDocIDs(t, docIDs)

	r := NewReader()
	assert.NoError(r.Load(buf, len(docIDs)))
	_, err := r.Get(len(docIDs))
	assert.ErrorIs(err, ErrPositionOutOfRange)
}

func TestReaderReuseAcrossLoads(t *testing.T) {
	assert := assert.New(t)
	r := NewReader()

	first := []uint32{1, 2, 3}
	buf1, _ := encodeDocIDs(t, first)
	assert.NoError(r.Load(buf1, len(first)))
	assert.Equal(first, r.Decode(nil))

	second := []uint32{10, 20, 30, 40, 50}
	buf2, _ := encodeDocIDs(t, second)
	assert.NoError(r.Load(buf2, len(second)))
	assert.Equal(second, r.Decode(nil))
	assert.Equal(0, r.Pos())
}
