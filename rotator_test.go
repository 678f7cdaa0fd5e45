package orrery

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestRotatorNoPole(t *testing.T) {
	r := NewRotator(24*time.Hour, 0, EpochJ2000, nil)
	if _, err := r.FromRef(); err != ErrNoPole {
		t.Fatalf("expected ErrNoPole, got %v", err)
	}
	if _, err := r.Rotation(EpochJ2000, NewSpherePoint(0, 0)); err != ErrNoPole {
		t.Fatalf("expected ErrNoPole, got %v", err)
	}
	if _, ok := r.Pole(); ok {
		t.Fatal("Pole reported a pole that was never configured")
	}
}

func TestToHoriz(t *testing.T) {
	// An observer's own location maps to the zenith.
	for _, loc := range []SpherePoint{
		NewSpherePointDeg(0, 0),
		NewSpherePointDeg(40.68, -74.004),
		NewSpherePointDeg(-33.8688, 151.2093),
	} {
		up := ToHoriz(loc).RotatePoint(loc)
		if !floats.EqualWithinAbs(up.Lat(), math.Pi/2, 1e-9) {
			t.Fatalf("location %s mapped to latitude %gd, not the zenith", loc, up.Lat()/deg2rad)
		}
	}
}

func TestEarthRotation(t *testing.T) {
	// From the north pole the celestial north pole is at the zenith at
	// any time of day.
	northPole := NewSpherePointDeg(90, 0)
	for _, hours := range []float64{0, 7.3, 18} {
		dt := EpochJ2000.Add(time.Duration(hours * float64(time.Hour)))
		rot, err := Earth.Rotator.Rotation(dt, northPole)
		if err != nil {
			t.Fatal(err)
		}
		up := rot.RotateVector([]float64{0, 0, 1})
		if !floats.EqualWithinAbs(up[2], 1, 1e-9) {
			t.Fatalf("celestial pole not at zenith: %v", up)
		}
	}

	// One sidereal day later the sky transform repeats.
	loc := NewSpherePointDeg(40, -74)
	r0, err := Earth.Rotator.Rotation(EpochJ2000, loc)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := Earth.Rotator.Rotation(EpochJ2000.Add(Earth.Rotator.Period), loc)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		a, b := r0.RotateVector(v), r1.RotateVector(v)
		for i := range a {
			if !floats.EqualWithinAbs(a[i], b[i], 1e-6) {
				t.Fatalf("sky transform did not repeat after one sidereal day: %v vs %v", a, b)
			}
		}
	}

	// Half a sidereal day flips the sky about the pole.
	rHalf, _ := Earth.Rotator.Rotation(EpochJ2000.Add(Earth.Rotator.Period/2), loc)
	v0 := r0.RotateVector([]float64{0, 0, 1})
	vHalf := rHalf.RotateVector([]float64{0, 0, 1})
	if !floats.EqualWithinAbs(v0[2], vHalf[2], 1e-6) {
		t.Fatal("pole altitude changed during the day")
	}
}

func TestRotatorNonSpinning(t *testing.T) {
	// A zero period means the body-fixed frame never advances.
	pole := NewSpherePointDeg(90, 0)
	r := NewRotator(0, 0, EpochJ2000, &pole)
	loc := NewSpherePointDeg(10, 20)
	r0, err := r.Rotation(EpochJ2000, loc)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := r.Rotation(EpochJ2000.Add(1000*time.Hour), loc)
	if err != nil {
		t.Fatal(err)
	}
	if !rotationsEqual(r0, r1) {
		t.Fatal("non-spinning body rotated")
	}
}

func TestRotatorMemo(t *testing.T) {
	loc1 := NewSpherePointDeg(40, -74)
	loc2 := NewSpherePointDeg(-33, 151)
	r := Earth.Rotator

	a, _ := r.Rotation(EpochJ2000, loc1)
	b, _ := r.Rotation(EpochJ2000, loc2)
	if rotationsEqual(a, b) {
		t.Fatal("different locations gave the same transform")
	}
	// Requerying the first pair must give back the original transform.
	c, _ := r.Rotation(EpochJ2000, loc1)
	if !rotationsEqual(a, c) {
		t.Fatal("requery after cache eviction changed the transform")
	}
}
