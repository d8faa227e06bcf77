package rangeimage

import "math"

// minNonEmptyCells is the threshold below which a scan is flagged EmptyScan
// (spec §7): fewer than this many projected cells carry a real return.
const minNonEmptyCells = 1

// EmptyScan reports whether a scan's projected range image fell below the
// minimum non-empty cell threshold of spec §7's EmptyScan warning. The
// scan is still emitted; this only tells a caller whether to log a warning.
func EmptyScan(img *Image) bool {
	return CountNonEmpty(img) < minNonEmptyCells
}

// CountNonEmpty returns the number of range-image cells that received a
// real return during projection.
func CountNonEmpty(img *Image) int {
	n := 0
	for _, rho := range img.Range {
		if rho < math.Inf(1) {
			n++
		}
	}
	return n
}
