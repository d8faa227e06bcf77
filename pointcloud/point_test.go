package pointcloud

import (
	"bytes"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestEncodeDecodeCell(t *testing.T) {
	cases := []struct {
		row, col int
	}{
		{0, 0},
		{7, 1350},
		{15, 1799},
		{2, 0},
	}
	for _, c := range cases {
		intensity := EncodeCell(c.row, c.col)
		row, col := DecodeCell(intensity)
		test.That(t, row, test.ShouldEqual, c.row)
		test.That(t, col, test.ShouldEqual, c.col)
	}
}

func TestEmptySentinel(t *testing.T) {
	test.That(t, EmptySentinel.IsEmpty(), test.ShouldBeTrue)
	test.That(t, EmptySentinel.Intensity, test.ShouldEqual, -1)
	test.That(t, NewPoint(1, 2, 3, 4).IsEmpty(), test.ShouldBeFalse)
}

func TestPointFinite(t *testing.T) {
	test.That(t, NewPoint(1, 2, 3, 0).Finite(), test.ShouldBeTrue)
	test.That(t, NewPoint(math.NaN(), 2, 3, 0).Finite(), test.ShouldBeFalse)
	test.That(t, NewPoint(math.Inf(1), 2, 3, 0).Finite(), test.ShouldBeFalse)
}

func TestOrganizedCloudResetsToSentinel(t *testing.T) {
	c := NewOrganizedCloud(4)
	test.That(t, c.Size(), test.ShouldEqual, 4)
	for _, p := range c {
		test.That(t, p.IsEmpty(), test.ShouldBeTrue)
	}
	c[1] = NewPoint(1, 1, 1, 1)
	c.Reset()
	for _, p := range c {
		test.That(t, p.IsEmpty(), test.ShouldBeTrue)
	}
}

func TestToPCDSkipsEmptyPoints(t *testing.T) {
	c := NewOrganizedCloud(3)
	c[1] = NewPoint(1, 2, 3, 7.135)

	var buf bytes.Buffer
	err := ToPCD(c, &buf, PCDAscii)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, "POINTS 1\n")
	test.That(t, buf.String(), test.ShouldContainSubstring, "1.000000 2.000000 3.000000 7.135000")
}
