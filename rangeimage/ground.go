package rangeimage

import "math"

// ClassifyGround implements spec §4.4: for each column, walks the bottom G
// rows comparing vertically adjacent full-cloud returns, grounded on
// imageProjection.cpp's groundRemoval(). It must run after Project and
// before Segment.
func ClassifyGround(img *Image) {
	cfg := img.Cfg

	for c := 0; c < cfg.HorizonScan; c++ {
		for r := 0; r < cfg.GroundScanInd; r++ {
			lower := img.Index(r, c)
			upper := img.Index(r+1, c)
			a := img.FullCloud[lower]
			b := img.FullCloud[upper]

			if a.IsEmpty() || b.IsEmpty() {
				img.Ground[lower] = GroundInvalid
				continue
			}

			dx := b.Position.X - a.Position.X
			dy := b.Position.Y - a.Position.Y
			dz := b.Position.Z - a.Position.Z
			beta := math.Atan2(dz, math.Sqrt(dx*dx+dy*dy)) * 180 / math.Pi

			if math.Abs(beta-cfg.SensorMountAngle) <= cfg.GroundAngleTolerance {
				img.Ground[lower] = GroundIsGround
				img.Ground[upper] = GroundIsGround
			}
		}
	}

	for i := range img.Label {
		if img.Ground[i] == GroundIsGround || math.IsInf(img.Range[i], 1) {
			img.Label[i] = LabelExcluded
		}
	}
}
