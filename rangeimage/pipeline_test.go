package rangeimage

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.viam.com/lidarfront/ingest"
	"go.viam.com/lidarfront/logging"
	"go.viam.com/lidarfront/pointcloud"
)

func TestPipelineProcessEmptyScan(t *testing.T) {
	cfg := testConfig()
	p := New(cfg, logging.NewTestLogger(t))

	em, err := p.Process(context.Background(), ingest.Batch{})

	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(em.Segmented), test.ShouldEqual, 0)
}

func TestPipelineProcessRejectsInputNotDense(t *testing.T) {
	cfg := testConfig()
	p := New(cfg, logging.NewTestLogger(t))

	batch := ingest.Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(0, 10, 0, 0)},
		Ring:   []int{7},
		Dense:  false,
	}

	_, err := p.Process(context.Background(), batch)

	test.That(t, err, test.ShouldEqual, ingest.ErrInputNotDense)
}

func TestPipelineProcessSinglePointDeadAhead(t *testing.T) {
	cfg := testConfig()
	p := New(cfg, logging.NewTestLogger(t))

	batch := ingest.Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(0, 10, 0, 0)},
		Ring:   []int{7},
		Dense:  true,
	}

	em, err := p.Process(context.Background(), batch)
	test.That(t, err, test.ShouldBeNil)

	idx := p.img.Index(7, 1350)
	test.That(t, p.img.Range[idx], test.ShouldEqual, 10.0)
	test.That(t, p.img.Label[idx], test.ShouldEqual, SentinelDrop)
	test.That(t, len(em.Outlier), test.ShouldEqual, 0)
}

func TestPipelineProcessIsRepeatableAcrossScans(t *testing.T) {
	cfg := testConfig()
	p := New(cfg, logging.NewTestLogger(t))

	batch := ingest.Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(0, 10, 0, 0)},
		Ring:   []int{7},
		Dense:  true,
	}

	em1, err := p.Process(context.Background(), batch)
	test.That(t, err, test.ShouldBeNil)
	em2, err := p.Process(context.Background(), batch)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, len(em1.Outlier), test.ShouldEqual, len(em2.Outlier))
	test.That(t, len(em1.Segmented), test.ShouldEqual, len(em2.Segmented))
}
