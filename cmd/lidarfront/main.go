// lidarfront runs the range-image projection and ground-aware segmentation
// front end once against a LAS file and writes every output cloud as a PCD
// file, the way the teacher's pointcloud/pointcloud_file.go reads LAS via
// github.com/edaniels/lidario and go.viam.com/rdk/pointcloud.ToPCD writes
// PCD, but driven from a flag-parsed CLI rather than a robot config
// (grounded on avatar29A-midgard-ro's cmd/grftool, the plainest flag-based
// CLI in the retrieved pack).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edaniels/lidario"

	"go.viam.com/lidarfront/config"
	"go.viam.com/lidarfront/ingest"
	"go.viam.com/lidarfront/logging"
	"go.viam.com/lidarfront/pointcloud"
	"go.viam.com/lidarfront/rangeimage"
	"go.viam.com/lidarfront/service"
)

func main() {
	lasPath := flag.String("las", "", "path to an input LAS file (required)")
	outDir := flag.String("out", ".", "directory to write output PCD files into")
	configPath := flag.String("config", "", "path to a YAML geometry config (defaults to the VLP-16 preset)")
	preset := flag.String("preset", "", "named scanner preset (vlp16, hdl32e, vls128, os1-16, os1-64); overrides -config")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *lasPath == "" {
		fmt.Fprintln(os.Stderr, "usage: lidarfront -las <file.las> [-out <dir>] [-config <file.yaml> | -preset <name>]")
		os.Exit(1)
	}

	log := logging.NewLogger("lidarfront")
	if *debug {
		log = logging.NewDebugLogger("lidarfront")
	}

	if err := run(*lasPath, *outDir, *configPath, *preset, log); err != nil {
		log.Errorw("run failed", "error", err)
		os.Exit(1)
	}
}

func run(lasPath, outDir, configPath, preset string, log logging.Logger) error {
	cfg, err := resolveConfig(configPath, preset)
	if err != nil {
		return err
	}

	svc, err := service.New(context.Background(), service.Config{Name: "lidarfront", Config: cfg}, log)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close(context.Background()) }()

	batch, err := readLAS(lasPath)
	if err != nil {
		return err
	}

	em, err := svc.ProcessScan(context.Background(), batch)
	if err != nil {
		return err
	}

	return writeEmission(outDir, em)
}

// resolveConfig chooses the scanner geometry: a named preset takes priority
// over a config file, which takes priority over the VLP-16 default (spec
// §12's supplemented named presets).
func resolveConfig(configPath, preset string) (config.Config, error) {
	switch preset {
	case "vlp16":
		return config.PresetVLP16(), nil
	case "hdl32e":
		return config.PresetHDL32E(), nil
	case "vls128":
		return config.PresetVLS128(), nil
	case "os1-16":
		return config.PresetOS1_16(), nil
	case "os1-64":
		return config.PresetOS1_64(), nil
	case "":
		// fall through to config file or default
	default:
		return config.Config{}, fmt.Errorf("unknown preset %q", preset)
	}

	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadFile(configPath)
}

// readLAS reads every point of a LAS file into an ingest.Batch. LAS files
// carry no beam-index channel, so the batch has no Ring and the front end
// falls back to deriving row from elevation (spec §4.3 step 1).
func readLAS(path string) (ingest.Batch, error) {
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return ingest.Batch{}, fmt.Errorf("opening LAS file %q: %w", path, err)
	}
	defer lf.Close()

	points := make([]pointcloud.Point, 0, lf.Header.NumberPoints)
	for i := 0; i < lf.Header.NumberPoints; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return ingest.Batch{}, fmt.Errorf("reading LAS point %d: %w", i, err)
		}
		d := p.PointData()
		points = append(points, pointcloud.NewPoint(d.X, d.Y, d.Z, 0))
	}

	return ingest.Batch{
		Header: ingest.Header{FrameID: filepath.Base(path)},
		Points: points,
		Dense:  true,
	}, nil
}

type namedCloud struct {
	name  string
	cloud pointcloud.Cloud
}

func writeEmission(outDir string, em rangeimage.Emission) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", outDir, err)
	}

	clouds := []namedCloud{
		{"full_projected", em.FullProjected},
		{"full_info", em.FullInfo},
		{"ground", em.Ground},
		{"segmented", em.Segmented},
		{"segmented_pure", em.SegmentedPure},
		{"outlier", em.Outlier},
	}

	for _, nc := range clouds {
		outPath := filepath.Join(outDir, nc.name+".pcd")
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %q: %w", outPath, err)
		}
		err = pointcloud.ToPCD(nc.cloud, f, pointcloud.PCDAscii)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("writing %q: %w", outPath, err)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %q: %w", outPath, closeErr)
		}
	}
	return nil
}
