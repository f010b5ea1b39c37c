// Package qmx implements the QMX-Improved codec for sequences of
// unsigned 32-bit integers.
//
// QMX is used by search systems to store document-id d-gaps inside
// posting lists, where decoding speed dominates lookup latency. The
// codec does not compress the integers in any general sense: callers
// are expected to have already transformed their input into
// non-negative d-gaps (see DeltaEncode). Each value is instead packed
// at one of 15 legal bit widths, chosen per block of up to 256 values,
// and the chosen widths are recorded as a run-length-encoded stream of
// one-byte selectors stored at the tail of the output buffer.
//
// A Codec instance owns reusable scratch buffers and is not safe for
// concurrent use; create one Codec per goroutine that needs one.
package qmx

import (
	"encoding/binary"
	"fmt"
)

var bo = binary.LittleEndian

// maxBlockSize is the largest number of integers any single selector
// width can cover (width-id 0, the "run of ones" width).
const maxBlockSize = 256

// overflowScratchSize is the size of the per-Codec scratch buffer used
// to pad a short tail block up to its full width's integer count
// without reading past the caller's source slice.
const overflowScratchSize = maxBlockSize * 2

// widthEntry describes one row of the selector table (spec.md §3.1):
// a width-id, the bit width it names, how many integers a block at
// that width holds, and how many payload bytes that block occupies.
type widthEntry struct {
	id           int
	width        int
	intsPerBlock int
	payloadBytes int
}

// widthTable is the static QMX-Improved selector table, ordered by
// width-id. Width-id 15 is intentionally absent: it is never chosen by
// the encoder and is handled as an illegal-selector no-op by the
// decoder (spec.md §7).
var widthTable = [15]widthEntry{
	{id: 0, width: 0, intsPerBlock: 256, payloadBytes: 0},
	{id: 1, width: 1, intsPerBlock: 128, payloadBytes: 16},
	{id: 2, width: 2, intsPerBlock: 64, payloadBytes: 16},
	{id: 3, width: 3, intsPerBlock: 40, payloadBytes: 16},
	{id: 4, width: 4, intsPerBlock: 32, payloadBytes: 16},
	{id: 5, width: 5, intsPerBlock: 24, payloadBytes: 16},
	{id: 6, width: 6, intsPerBlock: 20, payloadBytes: 16},
	{id: 7, width: 7, intsPerBlock: 36, payloadBytes: 32},
	{id: 8, width: 8, intsPerBlock: 16, payloadBytes: 16},
	{id: 9, width: 9, intsPerBlock: 28, payloadBytes: 32},
	{id: 10, width: 10, intsPerBlock: 12, payloadBytes: 16},
	{id: 11, width: 12, intsPerBlock: 20, payloadBytes: 32},
	{id: 12, width: 16, intsPerBlock: 8, payloadBytes: 16},
	{id: 13, width: 21, intsPerBlock: 12, payloadBytes: 32},
	{id: 14, width: 32, intsPerBlock: 4, payloadBytes: 16},
}

// widthByValue maps a legal QMX bit width to its table entry.
var widthByValue = func() map[int]widthEntry {
	m := make(map[int]widthEntry, len(widthTable))
	for _, e := range widthTable {
		m[e.width] = e
	}
	return m
}()

// widthSuccessor maps a legal QMX bit width to the next-wider legal
// width, in table order (spec.md §4.2 I3: "1→2→3→…→16→21→32"). The
// widest width, 32, has no successor; promotion past it cannot occur
// for uint32 input.
var widthSuccessor = func() map[int]int {
	m := make(map[int]int, len(widthTable))
	for i := 0; i+1 < len(widthTable); i++ {
		m[widthTable[i].width] = widthTable[i+1].width
	}
	return m
}()

func entryForWidth(width int) widthEntry {
	e, ok := widthByValue[width]
	if !ok {
		panic("qmx: not a legal width")
	}
	return e
}

func intsPerBlockOf(width int) int {
	return entryForWidth(width).intsPerBlock
}

// Codec holds the scratch buffers an Encode/Decode pair needs so
// repeated calls avoid reallocating. It is not safe for concurrent
// use from multiple goroutines; independent Codec values are fully
// independent (spec.md §5).
type Codec struct {
	widths    []byte       // per-integer chosen bit width, plus trailing pad
	selectors []byte       // selector bytes staged during emission
	overflow  [overflowScratchSize]uint32
}

// NewCodec returns a ready-to-use Codec with no pre-allocated scratch;
// buffers grow on first use and are reused across calls.
func NewCodec() *Codec {
	return &Codec{}
}

// widthScratch returns c.widths resized (and zero-extended) to hold n
// real entries plus maxBlockSize*2 bytes of trailing zero padding, so
// that stride-4 and block-sized reads during promotion never run past
// the end of the slice (spec.md §3.3).
func (c *Codec) widthScratch(n int) []byte {
	need := n + maxBlockSize*2
	if cap(c.widths) < need {
		c.widths = make([]byte, need)
	} else {
		c.widths = c.widths[:need]
		for i := range c.widths {
			c.widths[i] = 0
		}
	}
	return c.widths
}

// Encode packs src into dst, returning the number of bytes written.
// It returns 0 if dst is not large enough to hold the worst-case
// output (spec.md §6.2 precondition: len(dst) >= len(src)*4 + 512).
// Encode is deterministic: the same src always produces the same
// output bytes (spec.md §5, §8).
func (c *Codec) Encode(dst []byte, src []uint32) int {
	n := len(src)
	if n == 0 {
		return 0
	}
	if len(dst) < n*4+512 {
		return 0
	}

	widths := c.widthScratch(n)
	classifyAll(widths[:n], src)
	promoteWidths(widths, n)
	plan := planBlocks(widths, n)

	payloadLen := c.emitPayload(dst, src, plan)
	selectors := c.selectors

	total := payloadLen + len(selectors)
	if total > len(dst) {
		return 0
	}
	finalise(dst, payloadLen, selectors)
	return total
}

// EncodeErr wraps Encode for callers that want a checkable error instead
// of interpreting a bare 0 themselves: it returns ErrOutputTooSmall when
// dst could not hold the encoded stream (src itself is never invalid).
func (c *Codec) EncodeErr(dst []byte, src []uint32) (int, error) {
	n := c.Encode(dst, src)
	if n == 0 && len(src) > 0 {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputTooSmall, len(src)*4+512, len(dst))
	}
	return n, nil
}

// finalise copies the selector bytes, reversed, onto the tail of dst
// immediately after the payload region (spec.md §4.4): the last byte
// of the stream becomes the first selector a decoder consumes.
func finalise(dst []byte, payloadLen int, selectors []byte) {
	n := len(selectors)
	for i, b := range selectors {
		dst[payloadLen+n-1-i] = b
	}
}

// Decode fills dst[0:expectedCount] with the integers encoded in src.
// dst must have length >= expectedCount+256 to tolerate the decoder's
// block-granular writes past the final valid integer (spec.md §5,
// §6.2). expectedCount must equal the integer count originally passed
// to Encode; Decode has no way to check this and will not error if it
// is wrong (spec.md §7).
func (c *Codec) Decode(dst []uint32, expectedCount int, src []byte) {
	decodeStream(dst, src)
}
