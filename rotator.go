package orrery

import (
	"errors"
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ErrNoPole is returned when a rotator was configured without a pole
// direction and its reference-frame transform is requested.
var ErrNoPole = errors.New("rotator has no pole orientation")

// Rotator is an immutable sidereal-rotation descriptor for a body: its
// rotation period, the offset of its prime meridian at a reference epoch,
// and the direction of its north pole in equatorial coordinates. It produces
// the transform from the reference frame to the horizontal frame of an
// observer standing on the body.
type Rotator struct {
	Period   time.Duration // sidereal rotation period; zero means the body does not spin
	Meridian Angle         // angle from the ascending node to the prime meridian at Epoch
	Epoch    time.Time

	pole *SpherePoint

	fromRef *Rotation

	cachedDT  time.Time
	cachedLoc SpherePoint
	cachedRot Rotation
	hasCache  bool
}

// NewRotator creates a rotator with an explicit pole direction. pole may be
// nil, in which case any transform request fails with ErrNoPole.
func NewRotator(period time.Duration, meridian Angle, epoch time.Time, pole *SpherePoint) *Rotator {
	return &Rotator{Period: period, Meridian: meridian, Epoch: epoch, pole: pole}
}

// NewRotatorRADec creates a rotator with the pole given as a right
// ascension and declination pair.
func NewRotatorRADec(period time.Duration, meridian Angle, epoch time.Time, rightAsc, decl Angle) *Rotator {
	pole := NewSpherePointFromAngles(decl, rightAsc)
	return &Rotator{Period: period, Meridian: meridian, Epoch: epoch, pole: &pole}
}

// Pole returns the pole direction and whether one was configured.
func (r *Rotator) Pole() (SpherePoint, bool) {
	if r.pole == nil {
		return SpherePoint{}, false
	}
	return *r.pole, true
}

// FromRef returns the transform from the reference frame to the body-fixed
// frame at the reference epoch: the ascending node of the body's equator is
// moved to the reference direction, the frame is tilted by the pole's
// co-latitude, and the meridian offset is applied. Built once and cached.
func (r *Rotator) FromRef() (Rotation, error) {
	if r.fromRef != nil {
		return *r.fromRef, nil
	}
	if r.pole == nil {
		return Rotation{}, ErrNoPole
	}
	rot := NewRotation(0, 0, 1, -r.Meridian.Rad()).
		Mul(NewRotation(1, 0, 0, r.pole.Lat()-math.Pi/2)).
		Mul(NewRotation(0, 0, 1, -(r.pole.Long() + math.Pi/2)))
	r.fromRef = &rot
	return rot, nil
}

// ToHoriz returns the fixed transform from the body-fixed frame to the
// horizontal frame at the given location: the location's longitude is moved
// to the side opposite the reference direction, then the frame is tilted by
// the location's co-latitude.
func ToHoriz(loc SpherePoint) Rotation {
	return NewRotation(0, 1, 0, math.Pi/2-loc.Lat()).
		Mul(NewRotation(0, 0, 1, math.Pi-loc.Long()))
}

// Rotation returns the transform from reference coordinates to the
// horizontal coordinates of an observer at loc on the body at time dt. The
// most recently queried (time, location) pair is memoized.
func (r *Rotator) Rotation(dt time.Time, loc SpherePoint) (Rotation, error) {
	if r.hasCache && dt.Equal(r.cachedDT) && loc.Lat() == r.cachedLoc.Lat() && loc.Long() == r.cachedLoc.Long() {
		return r.cachedRot, nil
	}
	fromRef, err := r.FromRef()
	if err != nil {
		return Rotation{}, err
	}
	phase := 0.0
	if r.Period != 0 {
		days := julian.TimeToJD(dt) - julian.TimeToJD(r.Epoch)
		phase = 2 * math.Pi * days * secondsPerDay / r.Period.Seconds()
	}
	rot := ToHoriz(loc).
		Mul(NewRotation(0, 0, 1, -phase)).
		Mul(fromRef)
	r.cachedDT, r.cachedLoc, r.cachedRot, r.hasCache = dt, loc, rot, true
	return rot, nil
}
