package qmx

import (
	"fmt"
	"slices"
)

// Reader provides sequential and skip-search access to a decoded
// QMX-Improved posting list. Unlike Codec.Decode, which just fills a
// buffer with the raw decoded integers, Reader additionally
// reconstructs document IDs from d-gaps by prefix-summing the decoded
// values — the step original_source/src/lib.rs performs with
// cumulative_sum_256 after calling qmx_decode (SPEC_FULL.md §4). A
// Reader is not safe for concurrent use; create one per goroutine.
//
// Adapted from Akron/fastpfor-go/reader.go's Reader, generalized from
// one fixed 128-value FastPFOR block to an arbitrary-length decoded
// stream.
type Reader struct {
	codec  Codec
	values []uint32 // decoded, prefix-summed document IDs, plus 256 trailing scratch
	count  int
	pos    int
	loaded bool
}

// NewReader returns an empty Reader that must be Load-ed before use.
func NewReader() *Reader {
	return &Reader{}
}

// Load decodes count integers from buf as QMX-Improved d-gaps and
// reconstructs the cumulative document IDs they represent. It resets
// all reader state and can be called repeatedly to reuse the Reader
// (and its scratch buffer) across posting lists.
func (r *Reader) Load(buf []byte, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrPositionOutOfRange, count)
	}
	r.values = ensureUint32Cap(r.values, count, count+256)
	if count > 0 {
		r.codec.Decode(r.values[:count+256], count, buf)
		DeltaDecode(r.values[:count], r.values[:count], false)
	}
	r.count = count
	r.pos = 0
	r.loaded = true
	return nil
}

func ensureUint32Cap(dst []uint32, n, minCap int) []uint32 {
	if cap(dst) < minCap {
		return make([]uint32, n, minCap)
	}
	return dst[:n]
}

// IsLoaded reports whether Load has been called successfully.
func (r *Reader) IsLoaded() bool { return r.loaded }

// Len returns the number of document IDs in the loaded posting list.
func (r *Reader) Len() int { return r.count }

// Pos returns the current position for sequential iteration.
func (r *Reader) Pos() int { return r.pos }

// Reset rewinds sequential iteration to the beginning.
func (r *Reader) Reset() { r.pos = 0 }

// Get returns the document ID at pos.
func (r *Reader) Get(pos int) (uint32, error) {
	if !r.loaded {
		return 0, ErrNotLoaded
	}
	if pos < 0 || pos >= r.count {
		return 0, ErrPositionOutOfRange
	}
	return r.values[pos], nil
}

// Next returns the next document ID in sequence and advances Pos.
func (r *Reader) Next() (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= r.count {
		return 0, 0, false
	}
	value = r.values[r.pos]
	pos = r.pos
	r.pos++
	return value, pos, true
}

// SkipTo advances to and returns the first document ID >= req, using
// binary search since d-gap-derived document IDs are always
// monotonically increasing.
func (r *Reader) SkipTo(req uint32) (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= r.count {
		return 0, 0, false
	}
	search := r.values[r.pos:r.count]
	idx, _ := slices.BinarySearch(search, req)
	abs := r.pos + idx
	if abs >= r.count {
		r.pos = r.count
		return 0, 0, false
	}
	r.pos = abs + 1
	return r.values[abs], abs, true
}

// Decode copies every decoded document ID into dst, growing dst if
// its capacity is insufficient.
func (r *Reader) Decode(dst []uint32) []uint32 {
	if !r.loaded {
		return nil
	}
	if cap(dst) < r.count {
		dst = make([]uint32, r.count)
	} else {
		dst = dst[:r.count]
	}
	copy(dst, r.values[:r.count])
	return dst
}
