// Package pointcloud defines the point and ordered-cloud types shared by the
// range-image front end: the projected cloud, the info cloud, the ground
// cloud, the segmented clouds, and the outlier cloud are all represented the
// same way so emission (rangeimage.Emit) and any downstream consumer share a
// single vocabulary. It follows the position/value split of
// go.viam.com/rdk/pointcloud (Data.Value/SetValue, r3.Vector positions)
// rather than that package's map-keyed storage, because the front end's
// clouds are either fixed-size organized grids or append-only sequences, not
// the general sparse containers rdk's pointcloud.PointCloud models.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// Point is a single LiDAR return (or the empty sentinel) in the sensor
// frame: right-x, forward-y, up-z. Intensity carries either the sensor's
// reflectance channel (on raw ingest), an encoded (row, column) key (in the
// full cloud, see EncodeCell), a range value (in the full info cloud), or a
// cluster id (in the pure-object cloud), depending on which cloud the point
// belongs to.
type Point struct {
	Position  r3.Vector
	Intensity float64
}

// NewPoint returns a Point at the given position carrying intensity.
func NewPoint(x, y, z, intensity float64) Point {
	return Point{r3.Vector{X: x, Y: y, Z: z}, intensity}
}

// Finite reports whether every coordinate of p is a finite number. Ingest
// (§4.1 of the spec) drops points that fail this check before they ever
// reach projection.
func (p Point) Finite() bool {
	return !math.IsNaN(p.Position.X) && !math.IsInf(p.Position.X, 0) &&
		!math.IsNaN(p.Position.Y) && !math.IsInf(p.Position.Y, 0) &&
		!math.IsNaN(p.Position.Z) && !math.IsInf(p.Position.Z, 0)
}

// Range returns the Euclidean distance from the sensor origin to p.
func (p Point) Range() float64 {
	return p.Position.Norm()
}

// EmptySentinel is the placeholder point written into unfilled cells of the
// full and full-info clouds: NaN coordinates, intensity -1. It mirrors
// LeGO-LOAM's nanPoint (imageProjection.cpp, allocateMemory/resetParameters).
var EmptySentinel = Point{r3.Vector{X: nan(), Y: nan(), Z: nan()}, -1}

func nan() float64 { return math.NaN() }

// IsEmpty reports whether p is the empty sentinel, i.e. has no real return.
func (p Point) IsEmpty() bool {
	return math.IsNaN(p.Position.X)
}

// EncodeCell packs a (row, column) cell address into a single float64 the
// way the full cloud's intensity channel does: row + column/10000. Columns
// must be smaller than 10000 for the packing to round-trip; the front end's
// Horizon_SCAN is always far below that bound.
func EncodeCell(row, col int) float64 {
	return float64(row) + float64(col)/10000.0
}

// DecodeCell reverses EncodeCell.
func DecodeCell(intensity float64) (row, col int) {
	row = int(math.Floor(intensity))
	col = int(math.Round((intensity - float64(row)) * 10000.0))
	return row, col
}

// Cloud is an ordered, append-only sequence of points. The full and
// full-info clouds are fixed-length (R*C) and indexed by cell; the ground,
// segmented, segmented-pure, and outlier clouds grow by append during
// emission. Either way, Cloud is just a slice: the front end never needs
// point lookup by position, only iteration in the order points were
// written, so rdk's indexed storage (pointcloud.storage) buys nothing here.
type Cloud []Point

// NewOrganizedCloud returns a Cloud of size filled with the empty sentinel,
// used for the full and full-info clouds (§3's "full cloud").
func NewOrganizedCloud(size int) Cloud {
	c := make(Cloud, size)
	for i := range c {
		c[i] = EmptySentinel
	}
	return c
}

// Reset refills an organized cloud with the empty sentinel in place,
// avoiding a reallocation between scans (§5: fixed-capacity scratch buffers
// reused across scans).
func (c Cloud) Reset() {
	for i := range c {
		c[i] = EmptySentinel
	}
}

// Size returns the number of points currently held, matching the
// rdk.pointcloud.PointCloud.Size naming.
func (c Cloud) Size() int {
	return len(c)
}
