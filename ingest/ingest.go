// Package ingest implements the first stage of the front end (spec §4.1):
// accepting a raw point batch from an external transport collaborator,
// dropping non-finite points, and validating the optional per-point beam
// index ("ring") channel against the batch's declared density.
package ingest

import (
	"time"

	"github.com/pkg/errors"

	"go.viam.com/lidarfront/pointcloud"
)

// Header identifies a scan the way a ROS sensor_msgs/PointCloud2 header
// would: a timestamp and a frame id, matching the cloudHeader LeGO-LOAM
// carries through projectPointCloud (imageProjection.cpp).
type Header struct {
	Timestamp time.Time
	FrameID   string
}

// Batch is the raw input to the front end: a sequence header, the raw
// points, an optional parallel ring (beam index) array, and a dense flag.
// This is the boundary spec §6 calls "Input to the core".
type Batch struct {
	Header Header
	Points []pointcloud.Point
	// Ring holds the per-point beam index, parallel to Points, when the
	// upstream driver exposes it (e.g. a Velodyne VLP-16's "ring" channel).
	// Empty when not present.
	Ring []int
	// Dense indicates the driver asserts the batch contains no NaN points.
	// When RingPresent is true, Dense must also be true or ingestion fails
	// fast with ErrInputNotDense (spec §4.1, §7).
	Dense bool
}

// RingPresent reports whether the batch carries beam-index data.
func (b Batch) RingPresent() bool {
	return len(b.Ring) > 0
}

// ErrInputNotDense is returned when the ring channel is declared present
// but the batch is not marked dense (spec §7's InputNotDense, fatal at scan
// granularity: the scan is aborted and no clouds are emitted).
var ErrInputNotDense = errors.New("ingest: ring channel present but batch is not dense")

// Result is the output of Ingest: the filtered points (and their matching
// ring values, if any), plus a count of points dropped for being
// non-finite.
type Result struct {
	Points     []pointcloud.Point
	Ring       []int
	DroppedNaN int
}

// Ingest filters non-finite points out of a batch, preserving point order
// (spec §4.1: "No reordering"), and enforces the ring/dense invariant.
// Points and Ring are filtered in lockstep when Ring is present so
// downstream code never sees a ring value detached from its point.
func Ingest(b Batch) (Result, error) {
	if b.RingPresent() {
		if len(b.Ring) != len(b.Points) {
			return Result{}, errors.Errorf("ingest: ring length %d does not match point count %d", len(b.Ring), len(b.Points))
		}
		if !b.Dense {
			return Result{}, ErrInputNotDense
		}
	}

	points := make([]pointcloud.Point, 0, len(b.Points))
	var ring []int
	if b.RingPresent() {
		ring = make([]int, 0, len(b.Ring))
	}

	dropped := 0
	for i, p := range b.Points {
		if !p.Finite() {
			dropped++
			continue
		}
		points = append(points, p)
		if b.RingPresent() {
			ring = append(ring, b.Ring[i])
		}
	}

	return Result{Points: points, Ring: ring, DroppedNaN: dropped}, nil
}
