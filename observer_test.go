package orrery

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/gonum/floats"
)

// polarObserver stands on the north pole of a non-spinning primary whose
// equator and prime meridian line up with the reference frame, so horizontal
// coordinates relate to equatorial ones by a half turn about the zenith.
func polarObserver(wid, hei float64) *Observer {
	body := &Body{
		Named:   Named{Name: "Primum"},
		Type:    Planet,
		Symbol:  Planet.Symbol(),
		Rotator: NewRotatorRADec(0, 0, EpochJ2000, AngleFromDeg(270), AngleFromDeg(90)),
	}
	return NewObserver(EpochJ2000, NewSpherePointDeg(90, 0), body, wid, hei, false)
}

func TestObserverToRef(t *testing.T) {
	obs := NewObserver(EpochJ2000, NewSpherePointDeg(40, -74), Earth, 1, 1, false)

	// The observer's own body has no apparent direction.
	if _, err := obs.ToRef(Earth); !errors.Is(err, ErrNotDisplayable) {
		t.Fatalf("expected ErrNotDisplayable, got %v", err)
	}

	// The Sun appears opposite Earth's heliocentric position.
	pt, err := obs.ToRef(Sun)
	if err != nil {
		t.Fatal(err)
	}
	ep, _ := Earth.Position(obs.Time())
	anti := NewSpherePointFromVector(-ep[0], -ep[1], -ep[2])
	if !vectorsEqual(pt.Vector(), anti.Vector()) {
		t.Fatal("Sun direction is not opposite Earth's position")
	}

	// Deep-sky objects are parallax-free fixed directions.
	pt, err = obs.ToRef(Vega)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pt, Vega.Point) {
		t.Fatal("stellar direction must be the catalog point")
	}
}

func TestObserverLook(t *testing.T) {
	obs := polarObserver(1, 1)

	center := obs.Center()
	if !floats.EqualWithinAbs(center.Lat(), 0, 1e-12) || !floats.EqualWithinAbs(center.Long(), 0, 1e-12) {
		t.Fatal("initial view is not straight ahead")
	}

	obs.LookUp(0.3)
	if !floats.EqualWithinAbs(obs.Center().Lat(), 0.3, 1e-9) {
		t.Fatalf("center latitude %g after LookUp(0.3)", obs.Center().Lat())
	}
	obs.LookUp(-0.3)
	obs.LookRight(0.4)
	if !floats.EqualWithinAbs(obs.Center().Long(), -0.4, 1e-9) {
		t.Fatalf("center longitude %g after LookRight(0.4)", obs.Center().Long())
	}
	obs.LookRight(-0.4)

	// Rolling keeps the center fixed.
	obs.LookUp(0.2)
	before := obs.Center()
	obs.LookClock(0.7)
	after := obs.Center()
	if !vectorsEqual(before.Vector(), after.Vector()) {
		t.Fatal("LookClock moved the view center")
	}

	// LookTo centers the target point.
	target := NewSpherePoint(0.5, 1.0)
	obs.LookTo(target, 1)
	if !vectorsEqual(obs.Center().Vector(), target.Vector()) {
		t.Fatal("LookTo(.., 1) did not center the target")
	}
	x, y := obs.HorizToWindow(target)
	if !floats.EqualWithinAbs(x, 0.5, 1e-9) || !floats.EqualWithinAbs(y, 0.5, 1e-9) {
		t.Fatalf("centered target lands at (%g, %g) in the window", x, y)
	}

	// A partial LookTo covers the requested fraction of the arc.
	obs = polarObserver(1, 1)
	obs.LookTo(NewSpherePoint(0, 1.0), 0.5)
	if !floats.EqualWithinAbs(obs.Center().Long(), 0.5, 1e-9) {
		t.Fatalf("center longitude %g after half LookTo", obs.Center().Long())
	}
}

func TestObjToWindow(t *testing.T) {
	obs := polarObserver(2, 2)
	high := NewStellar("High", nil, Star, "", AngleFromDeg(180), AngleFromDeg(45))
	low := NewStellar("Low", nil, Star, "", AngleFromDeg(180), AngleFromDeg(10))
	below := NewStellar("Below", nil, Star, "", AngleFromDeg(180), AngleFromDeg(-80))

	x, y, on, err := obs.ObjToWindow(high)
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Fatal("star at altitude 45d should be in a 2 radian window")
	}
	if !floats.EqualWithinAbs(x, 0.5, 1e-9) {
		t.Fatalf("x = %g, expected 0.5", x)
	}
	if !floats.EqualWithinAbs(y, 0.5-45*deg2rad/2, 1e-9) {
		t.Fatalf("y = %g", y)
	}

	if _, _, on, _ = obs.ObjToWindow(low); !on {
		t.Fatal("star at altitude 10d should be visible")
	}
	if _, _, on, _ = obs.ObjToWindow(below); on {
		t.Fatal("star below the horizon should not be visible")
	}

	// The observer's own body is reported off screen without error.
	x, y, on, err = obs.ObjToWindow(obs.Body())
	if err != nil || on || x != -1 || y != -1 {
		t.Fatalf("own body gave (%g, %g, %v, %v)", x, y, on, err)
	}
}

func TestObserverSelection(t *testing.T) {
	obs := polarObserver(2, 2)
	high := NewStellar("High", nil, Star, "", AngleFromDeg(180), AngleFromDeg(45))
	low := NewStellar("Low", nil, Star, "", AngleFromDeg(180), AngleFromDeg(10))
	obs.ObjToWindow(high)
	obs.ObjToWindow(low)

	// Forward selection by y starts from the top of the window.
	obs.SelectBy(1, false)
	if obs.Selected != high {
		t.Fatal("first selection should be the topmost object")
	}
	obs.SelectBy(1, false)
	if obs.Selected != low {
		t.Fatal("selection did not advance")
	}
	// The order wraps around.
	obs.SelectBy(1, false)
	if obs.Selected != high {
		t.Fatal("selection did not wrap")
	}
	// Backward selection from an unlisted object starts at the end.
	obs.Selected = nil
	obs.SelectBy(-1, false)
	if obs.Selected != low {
		t.Fatal("backward selection should start at the last object")
	}

	obs.ClearVisible()
	obs.SelectBy(1, false)
	if obs.Selected != nil {
		t.Fatal("selection must clear with no visible objects")
	}
}

func TestObserverInvalidation(t *testing.T) {
	obs := NewObserver(EpochJ2000, NewSpherePointDeg(40, -74), Earth, 1, 1, false)
	tv0, err := obs.ToView()
	if err != nil {
		t.Fatal(err)
	}

	// Advancing time turns the sky.
	obs.SetTime(EpochJ2000.Add(6 * time.Hour))
	tv1, err := obs.ToView()
	if err != nil {
		t.Fatal(err)
	}
	if rotationsEqual(tv0, tv1) {
		t.Fatal("sky did not move with time")
	}

	// Reorienting the view changes the transform as well.
	obs.LookUp(math.Pi / 4)
	tv2, _ := obs.ToView()
	if rotationsEqual(tv1, tv2) {
		t.Fatal("view change did not invalidate the transform")
	}

	// Moving the observer does too.
	obs.SetLocation(NewSpherePointDeg(-33, 151))
	tv3, _ := obs.ToView()
	if rotationsEqual(tv2, tv3) {
		t.Fatal("location change did not invalidate the transform")
	}

	// A static observer ignores UpdateTime.
	before := obs.Time()
	obs.UpdateTime()
	if !obs.Time().Equal(before) {
		t.Fatal("static observer moved in time")
	}
}

func TestObserverSync(t *testing.T) {
	target := time.Now().UTC().Add(-12 * time.Hour)
	obs := NewObserver(target, NewSpherePointDeg(0, 0), Earth, 1, 1, true)
	obs.UpdateTime()
	// The observer keeps trailing the wall clock by the initial offset.
	lag := time.Now().UTC().Sub(obs.Time())
	if lag < 11*time.Hour || lag > 13*time.Hour {
		t.Fatalf("synced observer lags by %s", lag)
	}
}
