package pointcloud

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
)

// PCDType selects the encoding ToPCD writes. It mirrors
// go.viam.com/rdk/pointcloud's PCDAscii/PCDBinary/PCDCompressed constants;
// compressed PCD is not implemented here either, for the same reason: it is
// never exercised by anything in this module.
type PCDType int

const (
	// PCDAscii writes one "x y z intensity" line per point.
	PCDAscii PCDType = iota
	// PCDBinary writes four little-endian float32s per point.
	PCDBinary
)

// ToPCD writes cloud as a .pcd v0.7 file skipping empty-sentinel points, the
// way go.viam.com/rdk/pointcloud.ToPCD walks a PointCloud and skips entries
// that fail its predicate. Unlike rdk's writer, the FIELDS line always
// includes intensity: every cloud this front end emits uses the intensity
// channel for something (encoded cell, range, or cluster id), so dropping it
// would throw away the reason the cloud was written in the first place.
func ToPCD(cloud Cloud, out io.Writer, outputType PCDType) error {
	count := 0
	for _, p := range cloud {
		if !p.IsEmpty() {
			count++
		}
	}

	if _, err := fmt.Fprintf(out,
		"VERSION .7\n"+
			"FIELDS x y z intensity\n"+
			"SIZE 4 4 4 4\n"+
			"TYPE F F F F\n"+
			"COUNT 1 1 1 1\n"+
			"WIDTH %d\n"+
			"HEIGHT 1\n"+
			"VIEWPOINT 0 0 0 1 0 0 0\n"+
			"POINTS %d\n",
		count, count); err != nil {
		return errors.Wrap(err, "pointcloud: writing pcd header")
	}

	switch outputType {
	case PCDBinary:
		if _, err := fmt.Fprint(out, "DATA binary\n"); err != nil {
			return errors.Wrap(err, "pointcloud: writing pcd data tag")
		}
	case PCDAscii:
		if _, err := fmt.Fprint(out, "DATA ascii\n"); err != nil {
			return errors.Wrap(err, "pointcloud: writing pcd data tag")
		}
	default:
		return errors.Errorf("pointcloud: unknown pcd type %d", outputType)
	}

	return writePCDData(cloud, out, outputType)
}

func writePCDData(cloud Cloud, out io.Writer, outputType PCDType) error {
	buf := make([]byte, 16)
	for _, p := range cloud {
		if p.IsEmpty() {
			continue
		}
		switch outputType {
		case PCDBinary:
			binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(p.Position.X)))
			binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(p.Position.Y)))
			binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(p.Position.Z)))
			binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(float32(p.Intensity)))
			if _, err := out.Write(buf); err != nil {
				return errors.Wrap(err, "pointcloud: writing pcd binary point")
			}
		case PCDAscii:
			if _, err := fmt.Fprintf(out, "%f %f %f %f\n", p.Position.X, p.Position.Y, p.Position.Z, p.Intensity); err != nil {
				return errors.Wrap(err, "pointcloud: writing pcd ascii point")
			}
		}
	}
	return nil
}
