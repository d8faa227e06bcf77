package rangeimage

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/lidarfront/pointcloud"
)

// setCell writes a non-empty, unlabeled cell directly into img at (r, c)
// with the given range, bypassing Project so tests can set up range-image
// geometry precisely (spec §8 end-to-end scenarios).
func setCell(img *Image, r, c int, rho float64) {
	idx := img.Index(r, c)
	img.Range[idx] = rho
	img.FullCloud[idx] = pointcloud.NewPoint(0, rho, 0, pointcloud.EncodeCell(r, c))
}

func TestSegmentPoleAcceptedByLineSpanFallback(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	for r := 2; r <= 13; r++ {
		setCell(img, r, 10, 2.0)
	}

	Segment(img)

	firstIdx := img.Index(2, 10)
	label := img.Label[firstIdx]
	test.That(t, label, test.ShouldBeGreaterThan, 0)
	test.That(t, label, test.ShouldNotEqual, SentinelDrop)

	for r := 2; r <= 13; r++ {
		idx := img.Index(r, 10)
		test.That(t, img.Label[idx], test.ShouldEqual, label)
	}
}

func TestSegmentTinyFleckRejected(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	setCell(img, 10, 10, 5.0)
	setCell(img, 11, 10, 5.0)
	setCell(img, 12, 10, 5.0)

	Segment(img)

	for r := 10; r <= 12; r++ {
		idx := img.Index(r, 10)
		test.That(t, img.Label[idx], test.ShouldEqual, SentinelDrop)
	}
}

func TestSegmentWrapsAcrossCylindricalSeam(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	cols := []int{cfg.HorizonScan - 2, cfg.HorizonScan - 1, 0, 1}
	for _, c := range cols {
		for r := 2; r <= 13; r++ {
			setCell(img, r, c, 3.0)
		}
	}

	Segment(img)

	base := img.Label[img.Index(2, cols[0])]
	test.That(t, base, test.ShouldBeGreaterThan, 0)
	for _, c := range cols {
		for r := 2; r <= 13; r++ {
			idx := img.Index(r, c)
			test.That(t, img.Label[idx], test.ShouldEqual, base)
		}
	}
}

func TestSegmentDoesNotWrapAcrossRows(t *testing.T) {
	cfg := testConfig()
	img := NewImage(cfg)
	img.Reset()

	// 30 cells per strip so each strip is accepted as its own cluster; two
	// rejected clusters would both carry SentinelDrop and be indistinguishable.
	for c := 5; c < 35; c++ {
		setCell(img, 0, c, 3.0)
		setCell(img, cfg.NScan-1, c, 3.0)
	}

	Segment(img)

	test.That(t, img.Label[img.Index(0, 5)], test.ShouldNotEqual, img.Label[img.Index(cfg.NScan-1, 5)])
}
