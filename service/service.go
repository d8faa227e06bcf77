// Package service wraps the range-image front end the way
// go.viam.com/rdk/services/vision/obstaclespointcloud wraps its segmenter: a
// config with a CheckValid method, a constructor that validates before
// building anything, and a thin method surface traced with
// go.opencensus.io/trace. Unlike the teacher, this package has no robot or
// resource-graph dependency to plug into; it is the boundary an external
// transport collaborator (spec §6) calls directly.
package service

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"go.viam.com/lidarfront/config"
	"go.viam.com/lidarfront/ingest"
	"go.viam.com/lidarfront/logging"
	"go.viam.com/lidarfront/rangeimage"
)

// Config is the service's construction-time configuration: the scanner
// geometry of config.Config plus a human-readable name for logging.
type Config struct {
	Name string
	config.Config
}

// CheckValid validates Config the way segmentation.ErCCLConfig.CheckValid
// validates the teacher's segmenter config before it's allowed to
// construct anything.
func (c *Config) CheckValid() error {
	if c.Name == "" {
		return errors.New("service config must have a name")
	}
	return c.Config.Validate()
}

// Service runs one Pipeline per scanner and is the unit an external
// transport collaborator calls once per incoming scan.
type Service struct {
	name string
	pipe *rangeimage.Pipeline
	log  logging.Logger
}

// New validates conf and constructs a Service, mirroring
// registerOPSegmenter's validate-then-construct order.
func New(ctx context.Context, conf Config, log logging.Logger) (*Service, error) {
	_, span := trace.StartSpan(ctx, "service::registerRangeImageFrontEnd")
	defer span.End()

	if err := conf.CheckValid(); err != nil {
		return nil, errors.Wrap(err, "range image front end config error")
	}
	if log == nil {
		log = logging.NewLogger(conf.Name)
	} else {
		log = log.Named(conf.Name)
	}
	return &Service{
		name: conf.Name,
		pipe: rangeimage.New(conf.Config, log),
		log:  log,
	}, nil
}

// Name returns the service's configured name.
func (s *Service) Name() string { return s.name }

// ProcessScan runs one scan through the front end pipeline (spec §2) and
// returns its emission, or an error if the scan was discarded entirely
// (spec §7's fatal InputNotDense).
func (s *Service) ProcessScan(ctx context.Context, batch ingest.Batch) (rangeimage.Emission, error) {
	ctx, span := trace.StartSpan(ctx, "service::Service::ProcessScan::"+s.name)
	defer span.End()
	return s.pipe.Process(ctx, batch)
}

// Close flushes the service's logger, mirroring the teacher's resource
// Close contract (go.viam.com/rdk/resource.Resource).
func (s *Service) Close(ctx context.Context) error {
	return s.log.Sync()
}
