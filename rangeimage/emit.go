package rangeimage

import (
	"time"

	"github.com/google/uuid"

	"go.viam.com/lidarfront/pointcloud"
)

// ScanMetadata is the per-scan record handed off to downstream feature
// extraction (spec §3, §6).
type ScanMetadata struct {
	// ScanID uniquely identifies this scan so an external transport
	// collaborator can correlate the clouds of one Emission with this
	// record without relying on arrival order (spec §11).
	ScanID    uuid.UUID
	Timestamp time.Time
	FrameID   string

	StartOrientation float64
	EndOrientation   float64
	OrientationDiff  float64

	// StartRingIndex and EndRingIndex are indexed by beam and index into
	// Segmented (spec §4.6): StartRingIndex[r] is beam r's first index plus
	// 4 (size-1+5 before the beam), EndRingIndex[r] its last index minus 5
	// (size-1-5 after it). A beam with fewer than 10 points yields
	// EndRingIndex[r] < StartRingIndex[r].
	StartRingIndex []int
	EndRingIndex   []int

	// GroundFlag, ColIndex, and Range are parallel to Segmented.
	GroundFlag []bool
	ColIndex   []int
	Range      []float64
}

// Emission is the set of artifacts spec §6 hands to the emission
// collaborator: the scan metadata plus all six clouds.
type Emission struct {
	Metadata ScanMetadata

	FullProjected pointcloud.Cloud
	FullInfo      pointcloud.Cloud
	Ground        pointcloud.Cloud
	Segmented     pointcloud.Cloud
	SegmentedPure pointcloud.Cloud
	Outlier       pointcloud.Cloud
}

// Emit walks img row-major and assembles every output artifact of spec
// §4.6. It must run after ClassifyGround and Segment. bracket supplies the
// orientation fields computed in §4.2.
func Emit(img *Image, bracket AzimuthBracket) Emission {
	cfg := img.Cfg

	em := Emission{
		Metadata: ScanMetadata{
			StartOrientation: bracket.Start,
			EndOrientation:   bracket.End,
			OrientationDiff:  bracket.Diff,
			StartRingIndex:   make([]int, cfg.NScan),
			EndRingIndex:     make([]int, cfg.NScan),
		},
		FullProjected: img.FullCloud,
		FullInfo:      img.FullInfoCloud,
	}

	for r := 0; r < cfg.NScan; r++ {
		for c := 0; c < cfg.HorizonScan; c++ {
			idx := img.Index(r, c)
			if img.Ground[idx] == GroundIsGround {
				em.Ground = append(em.Ground, img.FullCloud[idx])
			}
			if img.Label[idx] > 0 && img.Label[idx] != SentinelDrop {
				em.SegmentedPure = append(em.SegmentedPure, pointcloud.Point{
					Position:  img.FullCloud[idx].Position,
					Intensity: float64(img.Label[idx]),
				})
			}
		}
	}

	for r := 0; r < cfg.NScan; r++ {
		em.Metadata.StartRingIndex[r] = len(em.Segmented) - 1 + 5

		for c := 0; c < cfg.HorizonScan; c++ {
			idx := img.Index(r, c)
			label := img.Label[idx]
			isGround := img.Ground[idx] == GroundIsGround

			if !(label > 0 || isGround) {
				continue
			}

			if label == SentinelDrop {
				if r > cfg.GroundScanInd && c%5 == 0 {
					em.Outlier = append(em.Outlier, img.FullCloud[idx])
				}
				continue
			}

			if isGround {
				if !(c%5 == 0 || c <= 5 || c >= cfg.HorizonScan-5) {
					continue
				}
			}

			em.Segmented = append(em.Segmented, img.FullCloud[idx])
			em.Metadata.GroundFlag = append(em.Metadata.GroundFlag, isGround)
			em.Metadata.ColIndex = append(em.Metadata.ColIndex, c)
			em.Metadata.Range = append(em.Metadata.Range, img.Range[idx])
		}

		em.Metadata.EndRingIndex[r] = len(em.Segmented) - 1 - 5
	}

	return em
}
