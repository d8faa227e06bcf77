package service

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.viam.com/lidarfront/config"
	"go.viam.com/lidarfront/ingest"
	"go.viam.com/lidarfront/logging"
	"go.viam.com/lidarfront/pointcloud"
)

func TestNewRejectsMissingName(t *testing.T) {
	_, err := New(context.Background(), Config{Config: config.Default()}, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	cfg := config.Default()
	cfg.NScan = 0
	_, err := New(context.Background(), Config{Name: "front", Config: cfg}, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestProcessScanRoundTrip(t *testing.T) {
	svc, err := New(context.Background(), Config{Name: "front", Config: config.Default()}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	batch := ingest.Batch{
		Points: []pointcloud.Point{pointcloud.NewPoint(0, 10, 0, 0)},
		Ring:   []int{7},
		Dense:  true,
	}
	em, err := svc.ProcessScan(context.Background(), batch)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, em.Metadata.StartRingIndex, test.ShouldNotBeNil)
	test.That(t, svc.Name(), test.ShouldEqual, "front")
}
