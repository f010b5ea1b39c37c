package qmx

import "math/bits"

// legalWidths lists every bit width the QMX-Improved selector table
// can name, in ascending order. It is the successor chain the
// promotion pass walks (spec.md §4.2 I3).
var legalWidths = [...]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 16, 21, 32}

// bitsNeededFor returns the smallest legal QMX bit width that can
// represent v (spec.md §4.1).
//
// Two special cases break the otherwise monotonic "smallest width
// whose max >= v" rule: v == 1 returns width 0 (a run of ones is
// encoded with no payload at all, see unpack.go's width-0 branch),
// and v == 0 returns width 1, since width 0 is reserved for ones and
// cannot also stand for zero.
//
// bitsNeededFor cannot fail for uint32 input: the widest legal width,
// 32, always fits.
func bitsNeededFor(v uint32) int {
	switch v {
	case 1:
		return 0
	case 0:
		return 1
	}
	need := bits.Len32(v)
	for _, w := range legalWidths[1:] {
		if w >= need {
			return w
		}
	}
	return 32
}

// classifyAll writes the chosen bit width for every value in src into
// widths, which must have len(widths) == len(src).
func classifyAll(widths []byte, src []uint32) {
	for i, v := range src {
		widths[i] = byte(bitsNeededFor(v))
	}
}
