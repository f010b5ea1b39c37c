package qmx

import "golang.org/x/sys/cpu"

// simdAvailable reports whether the vectorised (lane-grouped) pack and
// unpack path was selected. Both implementations produce byte-identical
// output (spec.md §9); the distinction is purely about instruction-
// level parallelism opportunity for the Go compiler, the same relationship
// the teacher's packLanes/packLanesSIMDPreferred vs packLanesScalar have
// (Akron/fastpfor-go/simdpack.go), except neither QMX path here drops to
// real machine assembly (see DESIGN.md).
var simdAvailable bool

func init() {
	initSIMDSelection()
}

// initSIMDSelection picks the lane-grouped path on any CPU that has at
// least SSE2 (i.e. effectively all amd64 hardware in production), and
// falls back to the plain per-lane scalar path otherwise.
func initSIMDSelection() {
	if cpu.X86.HasSSE2 {
		packLaneGroup = packLaneGroupVectorized
		unpackLaneGroup = unpackLaneGroupVectorized
		simdAvailable = true
		return
	}
	packLaneGroup = packLaneGroupScalar
	unpackLaneGroup = unpackLaneGroupScalar
	simdAvailable = false
}

// IsSIMDAvailable reports whether the vectorised lane-grouped pack and
// unpack path is active for this process.
func IsSIMDAvailable() bool {
	return simdAvailable
}
