// Package rangeimage implements the range-image projection and
// ground-aware segmentation front end (spec §§2-9): projecting a raw point
// batch into a dense R x C range image, classifying ground cells, and
// clustering the remainder with a breadth-first, depth-ratio angular
// criterion. It is grounded on LeGO-LOAM's imageProjection.cpp
// (original_source/) and, for its Go shape, on
// go.viam.com/rdk/vision/segmentation (clustering.go, object_segmentation.go,
// shapewalk.go) and go.viam.com/rdk/pointcloud/voxel_segmentation.go, which
// are the teacher repo's closest analogues to connected-component point
// cloud clustering.
package rangeimage

import (
	"math"

	"go.viam.com/lidarfront/config"
	"go.viam.com/lidarfront/pointcloud"
)

// GroundState is the ground classification of a range-image cell (spec §3).
type GroundState int8

const (
	// GroundUnknown is the default: not yet classified, or classified
	// not-ground.
	GroundUnknown GroundState = 0
	// GroundIsGround marks a cell as part of the ground plane.
	GroundIsGround GroundState = 1
	// GroundInvalid marks a cell that could not be classified because one
	// of its vertically-adjacent cells has no return.
	GroundInvalid GroundState = -1
)

// Label values for a range-image cell (spec §3).
const (
	// LabelUnset means the cell has not yet been assigned by segmentation.
	LabelUnset int32 = 0
	// LabelExcluded means the cell is ground or empty and is not a
	// candidate for clustering.
	LabelExcluded int32 = -1
	// SentinelDrop marks a cluster that was rejected for being too small;
	// it is LeGO-LOAM's magic 999999 (imageProjection.cpp, labelComponents).
	SentinelDrop int32 = 999999
)

// Image is the fixed-size working state for one scan: the three parallel
// R x C grids of spec §3, the two organized clouds they are built from, and
// the BFS scratch buffers segmentation reuses across clusters. An Image is
// allocated once per scanner geometry and Reset between scans, matching
// spec §5's "fixed-capacity scratch buffers ... allocated once and reused."
type Image struct {
	Cfg config.Config

	// Range, Ground, and Label are the three R*C grids, row-major indexed
	// by Index(r, c).
	Range  []float64
	Ground []GroundState
	Label  []int32

	// FullCloud and FullInfoCloud are the two organized clouds of spec §3,
	// indexed the same way as the grids.
	FullCloud     pointcloud.Cloud
	FullInfoCloud pointcloud.Cloud

	// NextClusterID is the cluster id segmentation will assign next; it
	// starts at 1 so that 0 remains LabelUnset.
	NextClusterID int32

	// bfs scratch buffers, sized R*C once and reused across every cluster
	// of every scan (spec §9: "not a dynamic container").
	queueRow, queueCol         []int32
	allPushedRow, allPushedCol []int32
	lineFlag                   []bool
}

// NewImage allocates an Image sized for cfg's geometry. Call Reset before
// the first use: NewImage leaves Range at zero rather than +Inf and
// NextClusterID at 0.
func NewImage(cfg config.Config) *Image {
	n := cfg.NScan * cfg.HorizonScan
	return &Image{
		Cfg:           cfg,
		Range:         make([]float64, n),
		Ground:        make([]GroundState, n),
		Label:         make([]int32, n),
		FullCloud:     pointcloud.NewOrganizedCloud(n),
		FullInfoCloud: pointcloud.NewOrganizedCloud(n),
		queueRow:      make([]int32, n),
		queueCol:      make([]int32, n),
		allPushedRow:  make([]int32, n),
		allPushedCol:  make([]int32, n),
		lineFlag:      make([]bool, cfg.NScan),
	}
}

// Index returns the flat index of row r, column c: c + r*C, matching spec
// §3's "Full cloud ... indexed by c + r·C".
func (img *Image) Index(r, c int) int {
	return c + r*img.Cfg.HorizonScan
}

// Reset reinitializes every grid and cloud to its default value between
// scans: Range to +Inf, Ground to GroundUnknown, Label to LabelUnset, both
// organized clouds to the empty sentinel, and the next cluster id to 1.
func (img *Image) Reset() {
	for i := range img.Range {
		img.Range[i] = math.Inf(1)
	}
	for i := range img.Ground {
		img.Ground[i] = GroundUnknown
	}
	for i := range img.Label {
		img.Label[i] = LabelUnset
	}
	img.FullCloud.Reset()
	img.FullInfoCloud.Reset()
	img.NextClusterID = 1
}
