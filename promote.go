package qmx

// blockPlan is one decided block: the integers in [start, start+len)
// of the source will be packed at width, where len is
// intsPerBlockOf(width).
type blockPlan struct {
	start int
	width int
}

// promoteWidths rewrites widths in place so that the array decomposes
// cleanly into block-runs (spec.md §4.2, step I1 only — the block-run
// decomposition and further promotion, I2/I3, happen in planBlocks
// since they need to walk the array rather than rewrite it in a single
// pass). widths must already be classified for its first n entries and
// zero-padded from n onward (the Codec's scratch allocator adds 512
// zero bytes). Only whole groups of 4 are rewritten; a trailing partial
// group, which lies in the zero padding, is left as it is.
func promoteWidths(widths []byte, n int) {
	for i := 0; i+4 <= len(widths); i += 4 {
		max := widths[i]
		for _, w := range widths[i+1 : i+4] {
			if w > max {
				max = w
			}
		}
		widths[i] = max
		widths[i+1] = max
		widths[i+2] = max
		widths[i+3] = max
	}
}

// planBlocks walks the promoted width array and decides the sequence
// of blocks covering [0, n) (spec.md §4.2 I2–I4). widths must be at
// least n+maxBlockSize long with legal widths already set in [0, n)
// and zeros beyond, so that a block-run candidate starting near the
// end of the real data can scan past n without running off the slice.
func planBlocks(widths []byte, n int) []blockPlan {
	var plan []blockPlan
	cursor := 0
	for cursor < n {
		remain := n - cursor
		var width int
		switch {
		case remain <= 4:
			// Any uint32 fits in 32 bits; this is always legal and
			// avoids emitting an oversized block-run for the very
			// last few integers (spec.md §4.2 I4).
			width = 32
		case remain <= 8 && fitsWidth(widths, cursor, n, 16):
			width = 16
		case remain <= 16 && fitsWidth(widths, cursor, n, 8):
			width = 8
		default:
			width = chooseBlockWidth(widths, cursor)
		}
		plan = append(plan, blockPlan{start: cursor, width: width})
		cursor += intsPerBlockOf(width)
	}
	return plan
}

// fitsWidth reports whether every real width in [cursor, n) is no
// wider than target.
func fitsWidth(widths []byte, cursor, n, target int) bool {
	for i := cursor; i < n; i++ {
		if int(widths[i]) > target {
			return false
		}
	}
	return true
}

// chooseBlockWidth implements spec.md §4.2 I3: starting from the width
// already recorded at cursor, check whether every 4-group inside the
// candidate block fits; if not, promote to the next legal width and
// retry. The loop terminates because widthSuccessor strictly increases
// and 32 always fits a uint32.
func chooseBlockWidth(widths []byte, cursor int) int {
	width := int(widths[cursor])
	for {
		blockLen := intsPerBlockOf(width)
		fits := true
		for g := cursor; g < cursor+blockLen; g += 4 {
			if int(widths[g]) > width {
				fits = false
				break
			}
		}
		if fits {
			return width
		}
		width = widthSuccessor[width]
	}
}
