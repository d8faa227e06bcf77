package ingest

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/lidarfront/pointcloud"
)

func TestIngestDropsNonFinitePoints(t *testing.T) {
	b := Batch{
		Points: []pointcloud.Point{
			pointcloud.NewPoint(1, 2, 3, 0),
			pointcloud.NewPoint(math.NaN(), 2, 3, 0),
			pointcloud.NewPoint(4, 5, 6, 0),
		},
	}
	res, err := Ingest(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.Points), test.ShouldEqual, 2)
	test.That(t, res.DroppedNaN, test.ShouldEqual, 1)
}

func TestIngestPreservesOrder(t *testing.T) {
	b := Batch{
		Points: []pointcloud.Point{
			pointcloud.NewPoint(1, 0, 0, 0),
			pointcloud.NewPoint(2, 0, 0, 0),
			pointcloud.NewPoint(3, 0, 0, 0),
		},
	}
	res, err := Ingest(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Points[0].Position.X, test.ShouldEqual, 1)
	test.That(t, res.Points[1].Position.X, test.ShouldEqual, 2)
	test.That(t, res.Points[2].Position.X, test.ShouldEqual, 3)
}

func TestIngestRingRequiresDense(t *testing.T) {
	b := Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(1, 0, 0, 0)},
		Ring:   []int{3},
		Dense:  false,
	}
	_, err := Ingest(b)
	test.That(t, err, test.ShouldEqual, ErrInputNotDense)
}

func TestIngestKeepsRingInLockstep(t *testing.T) {
	b := Batch{
		Points: []pointcloud.Point{
			pointcloud.NewPoint(1, 0, 0, 0),
			pointcloud.NewPoint(math.NaN(), 0, 0, 0),
			pointcloud.NewPoint(3, 0, 0, 0),
		},
		Ring:  []int{1, 2, 3},
		Dense: true,
	}
	res, err := Ingest(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.Points), test.ShouldEqual, 2)
	test.That(t, res.Ring, test.ShouldResemble, []int{1, 3})
}

func TestIngestRejectsMismatchedRingLength(t *testing.T) {
	b := Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(1, 0, 0, 0)},
		Ring:   []int{1, 2},
		Dense:  true,
	}
	_, err := Ingest(b)
	test.That(t, err, test.ShouldNotBeNil)
}
