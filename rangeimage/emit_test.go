package rangeimage

import (
	"testing"

	"go.viam.com/test"
)

func TestEmitEmptyScanProducesEmptyArtifacts(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	em := Emit(img, AzimuthBracket{})

	test.That(t, len(em.Segmented), test.ShouldEqual, 0)
	test.That(t, len(em.SegmentedPure), test.ShouldEqual, 0)
	test.That(t, len(em.Outlier), test.ShouldEqual, 0)
	for _, v := range em.Metadata.StartRingIndex {
		test.That(t, v, test.ShouldEqual, -1+5)
	}
	for _, v := range em.Metadata.EndRingIndex {
		test.That(t, v, test.ShouldEqual, -1-5)
	}
}

func TestEmitGroundDecimation(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	const height = 1.5
	for r := 0; r < 8; r++ {
		y := flatGroundY(cfg, r, height)
		for c := 0; c < cfg.HorizonScan; c++ {
			idx := img.Index(r, c)
			img.Range[idx] = y
		}
	}
	for c := 0; c < cfg.HorizonScan; c++ {
		for r := 0; r < 7; r++ {
			img.Ground[img.Index(r, c)] = GroundIsGround
		}
	}

	em := Emit(img, AzimuthBracket{})

	for i, c := range em.Metadata.ColIndex {
		if !em.Metadata.GroundFlag[i] {
			continue
		}
		keep := c%5 == 0 || c <= 5 || c >= cfg.HorizonScan-5
		test.That(t, keep, test.ShouldBeTrue)
	}
}

func TestEmitSentinelDropOnlySurfacesAsOutlierAboveGroundBand(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	aboveIdx := img.Index(cfg.GroundScanInd+1, 0)
	img.Label[aboveIdx] = SentinelDrop
	img.Range[aboveIdx] = 5

	belowIdx := img.Index(1, 0)
	img.Label[belowIdx] = SentinelDrop
	img.Range[belowIdx] = 5

	em := Emit(img, AzimuthBracket{})

	test.That(t, len(em.Outlier), test.ShouldEqual, 1)
}

func TestEmitPureObjectCloudCarriesClusterID(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	idx := img.Index(10, 10)
	img.Label[idx] = 7
	img.Range[idx] = 4.0

	em := Emit(img, AzimuthBracket{})

	test.That(t, len(em.SegmentedPure), test.ShouldEqual, 1)
	test.That(t, em.SegmentedPure[0].Intensity, test.ShouldEqual, float64(7))
}
