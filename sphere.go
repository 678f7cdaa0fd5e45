package orrery

import (
	"fmt"
	"math"
	"strings"
)

// SpherePoint is an immutable point on the unit 2-sphere.
//
// Conventions: the equator is the plane z = 0, the meridian crosses the
// equator at (1, 0, 0), and longitude runs counter-clockwise around the
// zenith (0, 0, 1). Both the (lat, long) and unit-vector representations are
// computed at construction.
type SpherePoint struct {
	lat, long float64
	vec       []float64
}

// NewSpherePoint returns the point at the given latitude and longitude in
// radians. Longitude is wrapped to [-π, π). Latitude is wrapped to
// [-π/2, π/2] with values that pass a pole mirrored back, so e.g. a latitude
// of 100 degrees becomes 80 degrees.
func NewSpherePoint(lat, long float64) SpherePoint {
	long = wrap(long+math.Pi, 2*math.Pi) - math.Pi
	lat = wrap(lat+math.Pi/2, 2*math.Pi) - math.Pi/2
	if lat > math.Pi/2 && lat < 3*math.Pi/2 {
		lat = math.Pi - lat
	}
	sLat, cLat := math.Sincos(lat)
	sLong, cLong := math.Sincos(long)
	return SpherePoint{lat, long, []float64{cLat * cLong, cLat * sLong, sLat}}
}

// NewSpherePointDeg is NewSpherePoint with latitude and longitude in degrees.
func NewSpherePointDeg(lat, long float64) SpherePoint {
	return NewSpherePoint(lat*deg2rad, long*deg2rad)
}

// NewSpherePointFromAngles returns the point at the given latitude and longitude.
func NewSpherePointFromAngles(lat, long Angle) SpherePoint {
	return NewSpherePoint(lat.Rad(), long.Rad())
}

// NewSpherePointFromVector returns the point the given vector passes through.
// The vector need not be unit length. The zero vector maps to the canonical
// point (1, 0, 0).
func NewSpherePointFromVector(x, y, z float64) SpherePoint {
	m := math.Sqrt(x*x + y*y + z*z)
	if m == 0 {
		return SpherePoint{0, 0, []float64{1, 0, 0}}
	}
	x, y, z = x/m, y/m, z/m
	long := wrap(math.Atan2(y, x)+math.Pi, 2*math.Pi) - math.Pi
	lat := math.Atan2(z, math.Sqrt(x*x+y*y))
	return SpherePoint{lat, long, []float64{x, y, z}}
}

// ParseLatLong parses a geographic location of the form "LAT, LONG" where
// each part is an angle string (see ParseAngle) with an optional trailing
// cardinal direction N/S or E/W. Underscores may stand in for minus signs so
// negative values survive command-line option parsing.
func ParseLatLong(s string) (SpherePoint, error) {
	s = strings.ReplaceAll(s, "_", "-")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return SpherePoint{}, fmt.Errorf("location %q must be of the form LAT, LONG", s)
	}
	latS, lngS := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if latS == "" || lngS == "" {
		return SpherePoint{}, fmt.Errorf("location %q must be of the form LAT, LONG", s)
	}

	latSign := 1.0
	switch latS[len(latS)-1] {
	case 's', 'S':
		latSign = -1
		latS = latS[:len(latS)-1]
	case 'n', 'N':
		latS = latS[:len(latS)-1]
	}
	lngSign := 1.0
	switch lngS[len(lngS)-1] {
	case 'w', 'W':
		lngSign = -1
		lngS = lngS[:len(lngS)-1]
	case 'e', 'E':
		lngS = lngS[:len(lngS)-1]
	}

	lat, err := ParseAngle(latS)
	if err != nil {
		return SpherePoint{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := ParseAngle(lngS)
	if err != nil {
		return SpherePoint{}, fmt.Errorf("invalid longitude: %w", err)
	}
	return NewSpherePointFromAngles(lat.Scale(latSign), lng.Scale(lngSign)), nil
}

// Lat returns the latitude in radians.
func (p SpherePoint) Lat() float64 {
	return p.lat
}

// Long returns the longitude in radians.
func (p SpherePoint) Long() float64 {
	return p.long
}

// LatAngle returns the latitude as an Angle.
func (p SpherePoint) LatAngle() Angle {
	return Angle(p.lat)
}

// LongAngle returns the longitude as an Angle.
func (p SpherePoint) LongAngle() Angle {
	return Angle(p.long)
}

// Vector returns the unit vector for this point. The returned slice must not
// be modified.
func (p SpherePoint) Vector() []float64 {
	return p.vec
}

// GeoFormat renders the point as geographic coordinates, e.g.
// "40.6800000 N, 74.0040000 W".
func (p SpherePoint) GeoFormat() string {
	latdir, longdir := byte('N'), byte('E')
	if p.lat < 0 {
		latdir = 'S'
	}
	if p.long < 0 {
		longdir = 'W'
	}
	return fmt.Sprintf("%.7f %c, %.7f %c", math.Abs(p.lat/deg2rad), latdir, math.Abs(p.long/deg2rad), longdir)
}

// String implements the Stringer interface.
func (p SpherePoint) String() string {
	return fmt.Sprintf("%.7fd ,  %.7fd", p.lat/deg2rad, p.long/deg2rad)
}
