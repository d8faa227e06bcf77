package rangeimage

import (
	"math"

	"go.viam.com/lidarfront/pointcloud"
)

// DropStats counts points discarded during projection for the silent,
// per-point DroppedPoint reasons of spec §7: never surfaced as an error,
// only tallied.
type DropStats struct {
	RowOutOfRange int
	ColOutOfRange int
	BelowMinRange int
}

// Total returns the sum of every drop reason.
func (s DropStats) Total() int {
	return s.RowOutOfRange + s.ColOutOfRange + s.BelowMinRange
}

// Project bins every point of points (with optional parallel ring) into
// img's range image (spec §4.3). It assumes img has already been Reset for
// this scan. The returned DropStats tallies points rejected for being out
// of row/column range or below the minimum sensor range; non-finite points
// are assumed to have already been removed by ingest.Ingest.
//
// The column formula assumes one sensor mounting: right-x, forward-y, up-z,
// sweeping clockwise viewed from above. A return directly behind the sensor
// (-x) lands in column 0, +x in column C/2, and columns increase
// counter-clockwise around +z. No other mounting is detected or supported.
func Project(img *Image, points []pointcloud.Point, ring []int) DropStats {
	cfg := img.Cfg
	var stats DropStats
	useRing := len(ring) > 0

	for i, p := range points {
		var r int
		if useRing {
			r = ring[i]
		} else {
			elev := math.Atan2(p.Position.Z, math.Sqrt(p.Position.X*p.Position.X+p.Position.Y*p.Position.Y)) * 180 / math.Pi
			r = int(math.Round((elev + cfg.AngBottom) / cfg.AngResY))
		}
		if r < 0 || r >= cfg.NScan {
			stats.RowOutOfRange++
			continue
		}

		phi := math.Atan2(p.Position.X, p.Position.Y) * 180 / math.Pi
		c := -int(math.Round((phi-90.0)/cfg.AngResX)) + cfg.HorizonScan/2
		if c >= cfg.HorizonScan {
			c -= cfg.HorizonScan
		}
		if c < 0 || c >= cfg.HorizonScan {
			stats.ColOutOfRange++
			continue
		}

		rho := p.Range()
		if rho < cfg.SensorMinimumRange {
			stats.BelowMinRange++
			continue
		}

		idx := img.Index(r, c)
		img.Range[idx] = rho
		img.FullCloud[idx] = pointcloud.Point{Position: p.Position, Intensity: pointcloud.EncodeCell(r, c)}
		img.FullInfoCloud[idx] = pointcloud.Point{Position: p.Position, Intensity: rho}
	}

	return stats
}
