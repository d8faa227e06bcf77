package rangeimage

import (
	"math"

	"go.viam.com/lidarfront/pointcloud"
)

// AzimuthBracket holds a scan's start and end azimuth, normalized so the
// sweep length lies in (pi, 3*pi] (spec §4.2).
type AzimuthBracket struct {
	Start, End, Diff float64
}

// azimuth returns theta(p) = -atan2(p.y, p.x): the sign flip converts the
// scanner's clockwise sweep (viewed from above, down the +z axis) to a
// counter-clockwise angle (imageProjection.cpp, findStartEndAngle).
func azimuth(p pointcloud.Point) float64 {
	return -math.Atan2(p.Position.Y, p.Position.X)
}

// ComputeAzimuthBracket computes the azimuth bracket from the first and
// last point of the (already ingest-filtered) batch. It panics if points is
// empty; callers must handle the empty-scan case (spec §8 scenario 1)
// before calling this.
func ComputeAzimuthBracket(points []pointcloud.Point) AzimuthBracket {
	start := azimuth(points[0])
	end := azimuth(points[len(points)-1]) + 2*math.Pi

	if end-start > 3*math.Pi {
		end -= 2 * math.Pi
	} else if end-start < math.Pi {
		end += 2 * math.Pi
	}

	return AzimuthBracket{Start: start, End: end, Diff: end - start}
}
