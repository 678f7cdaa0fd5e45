package orrery

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Angle is an angular quantity stored in radians. Conversions to degrees,
// DMS, and HMS are computed views, never alternate storage.
type Angle float64

// angleRE matches both DMS and HMS forms, e.g. "-3d 14m 15.6s" or "16h 42m 23.04s".
// The whole-number component is range-checked separately (degrees 0-359, hours 0-23).
var angleRE = regexp.MustCompile(`^([+-]?)([0123]?\d{1,2})([hHdD])\s*([0-5]?\d)[mM]\s*([0-5]?\d(?:\.\d+)?)[sS]$`)

// AngleFromDeg returns the Angle for the given number of degrees.
func AngleFromDeg(deg float64) Angle {
	return Angle(deg * deg2rad)
}

// AngleFromDMS builds an Angle from a degree-minute-second triple.
// The sign of the whole angle is carried on the degree component only;
// minutes and seconds are treated as magnitudes.
func AngleFromDMS(d, m int, s float64) Angle {
	neg := d < 0
	deg := math.Abs(float64(d)) + math.Abs(float64(m))/60 + math.Abs(s)/3600
	if neg {
		deg = -deg
	}
	return AngleFromDeg(deg)
}

// AngleFromHMS builds an Angle from an hour-minute-second triple.
// The HMS convention is unsigned: all components are taken as magnitudes.
func AngleFromHMS(h, m int, s float64) Angle {
	hours := math.Abs(float64(h)) + math.Abs(float64(m))/60 + math.Abs(s)/3600
	return Angle(hours * math.Pi / 12)
}

// ParseAngle parses an angle string. A bare number is taken as radians; a
// trailing 'r' forces radians and a trailing 'd' forces degrees. Anything
// else must follow the DMS or HMS form, e.g. "-3d 14m 15.6s" or
// "16h 42m 23.04s".
func ParseAngle(s string) (Angle, error) {
	return parseAngle(s, false)
}

// ParseAngleDeg is ParseAngle with bare numbers taken as degrees instead of
// radians. This is the convention of the catalog file format.
func ParseAngleDeg(s string) (Angle, error) {
	return parseAngle(s, true)
}

func parseAngle(s string, isdeg bool) (Angle, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	numeric := trimmed
	if strings.HasSuffix(trimmed, "d") {
		isdeg, numeric = true, trimmed[:len(trimmed)-1]
	} else if strings.HasSuffix(trimmed, "r") {
		isdeg, numeric = false, trimmed[:len(trimmed)-1]
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(numeric), 64); err == nil {
		if isdeg {
			return AngleFromDeg(v), nil
		}
		return Angle(v), nil
	}
	// Not a plain number, must be a DMS or HMS string.
	return parseHDMS(strings.TrimSpace(s))
}

// parseHDMS parses a degree-minute-second or hour-minute-second string.
func parseHDMS(s string) (Angle, error) {
	m := angleRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("string %q does not match HMS or DMS format", s)
	}
	isdms := strings.ToLower(m[3]) == "d"
	sgn := 1.0
	if m[1] != "" {
		if !isdms {
			return 0, fmt.Errorf("HMS format is not signed: %q", s)
		}
		if m[1] == "-" {
			sgn = -1
		}
	}
	hd, _ := strconv.Atoi(m[2])
	min, _ := strconv.Atoi(m[4])
	sec, _ := strconv.ParseFloat(m[5], 64)
	if isdms {
		if hd > 359 {
			return 0, fmt.Errorf("degrees must be between 0 and 359, got %d", hd)
		}
	} else if hd > 23 {
		return 0, fmt.Errorf("hours must be between 0 and 23, got %d", hd)
	}
	if min > 59 {
		return 0, fmt.Errorf("minutes must be between 0 and 59, got %d", min)
	}
	if sec >= 60 {
		return 0, fmt.Errorf("seconds must be less than 60, got %g", sec)
	}
	deg := float64(hd) + (float64(min)+sec/60)/60
	if !isdms {
		deg *= 15 // 15 degrees per hour
	}
	return AngleFromDeg(sgn * deg), nil
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	return float64(a)
}

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 {
	return float64(a) / deg2rad
}

// Add returns the sum of the two angles.
func (a Angle) Add(b Angle) Angle {
	return a + b
}

// Scale multiplies the angle by k, wrapping the angle to [0, 2π) first.
func (a Angle) Scale(k float64) Angle {
	return Angle(wrap(float64(a), 2*math.Pi) * k)
}

// splitBy60 splits a number into base-60 digits, the last carrying any
// decimals. The sign is placed on the first digit only.
func splitBy60(number float64) (int, int, float64) {
	sgn := int(sign(number))
	number = math.Abs(number)
	hd := int(number)
	number = (number - float64(hd)) * 60
	m := int(number)
	s := (number - float64(m)) * 60
	return sgn * hd, m, s
}

// DMS returns the angle as a degree-minute-second triple with the degree
// component wrapped to [-180, 180) and carrying the sign.
func (a Angle) DMS() (int, int, float64) {
	deg := wrap(a.Deg()+180, 360) - 180
	return splitBy60(deg)
}

// DMSString formats the angle as e.g. "-3d 14m 15.6s".
func (a Angle) DMSString() string {
	d, m, s := a.DMS()
	return fmt.Sprintf("%dd %dm %gs", d, m, s)
}

// HMS returns the angle as an hour-minute-second triple with the hour
// component wrapped to [0, 24).
func (a Angle) HMS() (int, int, float64) {
	hours := wrap(12*float64(a)/math.Pi, 24)
	return splitBy60(hours)
}

// HMSString formats the angle as e.g. "16h 42m 23.04s".
func (a Angle) HMSString() string {
	h, m, s := a.HMS()
	return fmt.Sprintf("%dh %dm %gs", h, m, s)
}
