package orrery

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSpherePointNormalization(t *testing.T) {
	// Latitudes past a pole are mirrored back.
	pt := NewSpherePointDeg(100, 0)
	if !floats.EqualWithinAbs(pt.Lat(), 80*deg2rad, 1e-9) {
		t.Fatalf("latitude 100d normalized to %gd, expected 80d", pt.Lat()/deg2rad)
	}
	pt = NewSpherePointDeg(-100, 0)
	if !floats.EqualWithinAbs(pt.Lat(), -80*deg2rad, 1e-9) {
		t.Fatalf("latitude -100d normalized to %gd, expected -80d", pt.Lat()/deg2rad)
	}
	// Longitude wraps to [-pi, pi).
	pt = NewSpherePointDeg(0, 190)
	if !floats.EqualWithinAbs(pt.Long(), -170*deg2rad, 1e-9) {
		t.Fatalf("longitude 190d normalized to %gd, expected -170d", pt.Long()/deg2rad)
	}
	if pt := NewSpherePointDeg(0, -180); pt.Long() >= math.Pi {
		t.Fatal("longitude -180d must stay in [-pi, pi)")
	}
}

func TestSpherePointVector(t *testing.T) {
	if !vectorsEqual(NewSpherePoint(0, 0).Vector(), []float64{1, 0, 0}) {
		t.Fatal("origin point is not (1,0,0)")
	}
	if !vectorsEqual(NewSpherePointDeg(90, 0).Vector(), []float64{0, 0, 1}) {
		t.Fatal("north pole is not (0,0,1)")
	}
	if !vectorsEqual(NewSpherePointDeg(0, 90).Vector(), []float64{0, 1, 0}) {
		t.Fatal("90d east is not (0,1,0)")
	}

	// The zero vector maps to the canonical point.
	if !vectorsEqual(NewSpherePointFromVector(0, 0, 0).Vector(), []float64{1, 0, 0}) {
		t.Fatal("zero vector did not map to (1,0,0)")
	}
	// Vectors are unitized.
	pt := NewSpherePointFromVector(0, -3, 0)
	if !vectorsEqual(pt.Vector(), []float64{0, -1, 0}) {
		t.Fatal("(0,-3,0) did not unitize to (0,-1,0)")
	}
	if ok, err := anglesEqual(pt.Long(), -math.Pi/2); !ok {
		t.Fatal(err)
	}

	// Round trip through both representations.
	orig := NewSpherePointDeg(37.5, -122.3)
	v := orig.Vector()
	back := NewSpherePointFromVector(v[0], v[1], v[2])
	if ok, err := anglesEqual(orig.Lat(), back.Lat()); !ok {
		t.Fatal(err)
	}
	if ok, err := anglesEqual(orig.Long(), back.Long()); !ok {
		t.Fatal(err)
	}
}

func TestParseLatLong(t *testing.T) {
	for _, it := range []struct {
		in        string
		lat, long float64 // degrees
	}{
		{"40.68d N, 74.004d W", 40.68, -74.004},
		{"40.68d, -74.004d", 40.68, -74.004},
		{"33.8688d S, 151.2093d E", -33.8688, 151.2093},
		{"_12.5d, _45d", -12.5, -45},
		{"51d 30m 26s N, 0d 7m 39s W", 51.5072, -0.1275},
	} {
		pt, err := ParseLatLong(it.in)
		if err != nil {
			t.Fatalf("failed to parse %q: %s", it.in, err)
		}
		if !floats.EqualWithinAbs(pt.Lat(), it.lat*deg2rad, 1e-4) {
			t.Fatalf("parsed %q with latitude %gd, expected %gd", it.in, pt.Lat()/deg2rad, it.lat)
		}
		if !floats.EqualWithinAbs(pt.Long(), it.long*deg2rad, 1e-4) {
			t.Fatalf("parsed %q with longitude %gd, expected %gd", it.in, pt.Long()/deg2rad, it.long)
		}
	}

	for _, in := range []string{"", "40.68d", "40.68d N", "a, b", "1d 2m 3s N, x"} {
		if _, err := ParseLatLong(in); err == nil {
			t.Fatalf("parsing %q should have failed", in)
		}
	}
}

func TestSpherePointStrings(t *testing.T) {
	pt := NewSpherePointDeg(40.68, -74.004)
	if got := pt.GeoFormat(); got != "40.6800000 N, 74.0040000 W" {
		t.Fatalf("unexpected geographic format %q", got)
	}
	pt = NewSpherePointDeg(-33.8688, 151.2093)
	if got := pt.GeoFormat(); got != "33.8688000 S, 151.2093000 E" {
		t.Fatalf("unexpected geographic format %q", got)
	}
}
