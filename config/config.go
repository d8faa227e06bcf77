// Package config loads and validates the scanner geometry and segmentation
// thresholds that parameterize the front end (spec §3, §6). It supports two
// sources the way go.viam.com/rdk/config supports both a config file on disk
// and an attribute map handed down by a robot's component config: a YAML
// file (gopkg.in/yaml.v3, the same library the retrieved midgard-ro and
// sensor-logger repos use for their own config files) and an
// AttributeMap decoded with github.com/go-viper/mapstructure/v2, mirroring
// go.viam.com/rdk/config's TransformAttributeMapToStruct convention.
package config

import (
	"math"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// AttributeMap is a generic bag of configuration attributes, the same shape
// as go.viam.com/rdk/config.AttributeMap (api/config.go in the teacher
// repo): decoded JSON/YAML with string keys and interface{} values, destined
// to be coerced into a typed Config.
type AttributeMap map[string]interface{}

// Config is the scanner geometry and segmentation configuration surface
// described in spec §3 and §6. Field names use Go casing; the serialized
// keys are snake_case forms of the LeGO-LOAM original's names (utility.h's
// N_SCAN, ang_res_x, ...), the vocabulary every operator of this kind of
// sensor already knows.
type Config struct {
	// NScan is the number of beams (rows), R in the spec.
	NScan int `json:"n_scan" yaml:"n_scan" mapstructure:"n_scan"`
	// HorizonScan is the number of azimuth bins per revolution (columns), C.
	HorizonScan int `json:"horizon_scan" yaml:"horizon_scan" mapstructure:"horizon_scan"`
	// AngResX is the horizontal angular resolution in degrees.
	AngResX float64 `json:"ang_res_x" yaml:"ang_res_x" mapstructure:"ang_res_x"`
	// AngResY is the vertical angular resolution in degrees.
	AngResY float64 `json:"ang_res_y" yaml:"ang_res_y" mapstructure:"ang_res_y"`
	// AngBottom is the absolute elevation of the lowest beam, in degrees.
	AngBottom float64 `json:"ang_bottom" yaml:"ang_bottom" mapstructure:"ang_bottom"`
	// GroundScanInd is G, the number of bottom rows eligible to be ground.
	GroundScanInd int `json:"ground_scan_ind" yaml:"ground_scan_ind" mapstructure:"ground_scan_ind"`
	// SensorMountAngle is the pitch of the sensor frame relative to
	// horizontal, in degrees.
	SensorMountAngle float64 `json:"sensor_mount_angle" yaml:"sensor_mount_angle" mapstructure:"sensor_mount_angle"`
	// SensorMinimumRange is the minimum valid range.
	SensorMinimumRange float64 `json:"sensor_minimum_range" yaml:"sensor_minimum_range" mapstructure:"sensor_minimum_range"`
	// GroundAngleTolerance is the +/- degrees around SensorMountAngle a
	// vertical inclination must fall within to be called ground (spec §4.4's
	// "magic 10 degrees"). Defaults to 10.
	GroundAngleTolerance float64 `json:"ground_angle_tolerance" yaml:"ground_angle_tolerance" mapstructure:"ground_angle_tolerance"`
	// SegmentTheta is the BFS link-predicate angle threshold, in radians.
	SegmentTheta float64 `json:"segment_theta" yaml:"segment_theta" mapstructure:"segment_theta"`
	// SegmentValidPointNum is the fallback minimum cluster size (below the
	// unconditional 30-point acceptance) combined with SegmentValidLineNum.
	SegmentValidPointNum int `json:"segment_valid_point_num" yaml:"segment_valid_point_num" mapstructure:"segment_valid_point_num"`
	// SegmentValidLineNum is the fallback minimum distinct-beam span.
	SegmentValidLineNum int `json:"segment_valid_line_num" yaml:"segment_valid_line_num" mapstructure:"segment_valid_line_num"`
	// UseCloudRing uses the sensor-provided beam index instead of deriving
	// the row from elevation.
	UseCloudRing bool `json:"use_cloud_ring" yaml:"use_cloud_ring" mapstructure:"use_cloud_ring"`
	// ScanPeriod is advisory: it informs an external timing collaborator and
	// is not read by anything in this package.
	ScanPeriod float64 `json:"scan_period" yaml:"scan_period" mapstructure:"scan_period"`
}

// AngResXRad and AngResYRad return the angular resolutions in radians, the
// segmentAlphaX/segmentAlphaY of the original (utility.h).
func (c *Config) AngResXRad() float64 { return c.AngResX * math.Pi / 180 }
func (c *Config) AngResYRad() float64 { return c.AngResY * math.Pi / 180 }

// Default returns the VLP-16 configuration LeGO-LOAM ships with
// (utility.h): 16 beams, 1800 azimuth bins, 0.2/2.0 degree resolution, a
// 7-row ground band, 60 degree segmentation threshold.
func Default() Config {
	return Config{
		NScan:                16,
		HorizonScan:          1800,
		AngResX:              0.2,
		AngResY:              2.0,
		AngBottom:            15.1,
		GroundScanInd:        7,
		SensorMountAngle:     0.0,
		SensorMinimumRange:   1.0,
		GroundAngleTolerance: 10.0,
		SegmentTheta:         60.0 * math.Pi / 180.0,
		SegmentValidPointNum: 5,
		SegmentValidLineNum:  3,
		UseCloudRing:         true,
		ScanPeriod:           0.1,
	}
}

// PresetVLP16 is an alias of Default, named for parity with the other
// presets below.
func PresetVLP16() Config { return Default() }

// PresetHDL32E is the HDL-32E geometry from LeGO-LOAM's utility.h
// (commented-out alternate block).
func PresetHDL32E() Config {
	c := Default()
	c.NScan = 32
	c.HorizonScan = 1800
	c.AngResX = 360.0 / float64(c.HorizonScan)
	c.AngResY = 41.33 / float64(c.NScan-1)
	c.AngBottom = 30.67
	c.GroundScanInd = 20
	return c
}

// PresetVLS128 is the VLS-128 geometry from LeGO-LOAM's utility.h.
func PresetVLS128() Config {
	c := Default()
	c.NScan = 128
	c.HorizonScan = 1800
	c.AngResX = 0.2
	c.AngResY = 0.3
	c.AngBottom = 25.0
	c.GroundScanInd = 10
	return c
}

// PresetOS1_16 is the Ouster OS1-16 geometry from LeGO-LOAM's utility.h.
func PresetOS1_16() Config { //nolint:stylecheck // matches sensor model name
	c := Default()
	c.NScan = 16
	c.HorizonScan = 1024
	c.AngResX = 360.0 / float64(c.HorizonScan)
	c.AngResY = 33.2 / float64(c.NScan-1)
	c.AngBottom = 16.6
	c.GroundScanInd = 7
	return c
}

// PresetOS1_64 is the Ouster OS1-64 geometry from LeGO-LOAM's utility.h.
func PresetOS1_64() Config { //nolint:stylecheck // matches sensor model name
	c := Default()
	c.NScan = 64
	c.HorizonScan = 1024
	c.AngResX = 360.0 / float64(c.HorizonScan)
	c.AngResY = 33.2 / float64(c.NScan-1)
	c.AngBottom = 16.6
	c.GroundScanInd = 15
	return c
}

// Validate checks the startup-fatal GeometryMismatch conditions of spec §7:
// G >= R, C not positive, ang_res_y <= 0, etc. It accumulates every
// violation with multierr.Append rather than stopping at the first, the
// way go.viam.com/rdk/pointcloud's file readers combine close errors, so a
// misconfigured deployment sees every problem in one failure instead of
// fixing one field at a time.
func (c *Config) Validate() error {
	var errs error
	if c.NScan <= 0 {
		errs = multierr.Append(errs, errors.New("n_scan must be positive"))
	}
	if c.HorizonScan <= 0 {
		errs = multierr.Append(errs, errors.New("horizon_scan must be positive"))
	}
	if c.GroundScanInd < 0 {
		errs = multierr.Append(errs, errors.New("ground_scan_ind must not be negative"))
	}
	if c.NScan > 0 && c.GroundScanInd >= c.NScan {
		errs = multierr.Append(errs, errors.Errorf("ground_scan_ind (%d) must be less than n_scan (%d)", c.GroundScanInd, c.NScan))
	}
	if c.AngResX <= 0 {
		errs = multierr.Append(errs, errors.New("ang_res_x must be positive"))
	}
	if c.AngResY <= 0 {
		errs = multierr.Append(errs, errors.New("ang_res_y must be positive"))
	}
	if c.SensorMinimumRange < 0 {
		errs = multierr.Append(errs, errors.New("sensor_minimum_range must not be negative"))
	}
	if c.SegmentValidPointNum <= 0 {
		errs = multierr.Append(errs, errors.New("segment_valid_point_num must be positive"))
	}
	if c.SegmentValidLineNum <= 0 {
		errs = multierr.Append(errs, errors.New("segment_valid_line_num must be positive"))
	}
	if c.SegmentTheta <= 0 || c.SegmentTheta >= math.Pi {
		errs = multierr.Append(errs, errors.New("segment_theta must be in (0, pi) radians"))
	}
	if errs != nil {
		return errors.Wrap(errs, "geometry mismatch")
	}
	return nil
}

// applyDefaults fills in the handful of fields that are easy to omit from a
// hand-written attribute map and have an unambiguous, documented default,
// following spec §9's note that the 10 degree ground-classification
// threshold should default but remain configurable.
func (c *Config) applyDefaults() {
	if c.GroundAngleTolerance == 0 {
		c.GroundAngleTolerance = 10.0
	}
	if c.SegmentValidPointNum == 0 {
		c.SegmentValidPointNum = 5
	}
	if c.SegmentValidLineNum == 0 {
		c.SegmentValidLineNum = 3
	}
	if c.SegmentTheta == 0 {
		c.SegmentTheta = 60.0 * math.Pi / 180.0
	}
}

// LoadFile reads a YAML configuration file into a Config, validates it, and
// returns it. It follows the plain yaml.Unmarshal-into-struct convention the
// midgard-ro and sensor-logger repos both use for their own configs.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config file %q", path)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config file %q", path)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromAttributeMap decodes an AttributeMap into a Config the way
// go.viam.com/rdk/config.TransformAttributeMapToStruct decodes a component's
// attributes into its native config type, for an external collaborator that
// hands the front end its geometry as an already-parsed map rather than a
// file path.
func FromAttributeMap(attrs AttributeMap) (Config, error) {
	c := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "building attribute decoder")
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return Config{}, errors.Wrap(err, "decoding attribute map")
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
