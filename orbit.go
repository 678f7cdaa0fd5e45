package orrery

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// EarthObliquity is the tilt of Earth's equator against the ecliptic,
	// used to carry ecliptic coordinates into equatorial ones.
	EarthObliquity = 23.4365 * deg2rad
	// GravConst is the universal gravitational constant in km^3/(kg s^2).
	GravConst = 6.67430e-20
	// secondsPerDay converts Julian-day differences into seconds.
	secondsPerDay = 86400.0
)

// EpochJ2000 is the J2000 reference epoch: noon, January 1st, 2000 (UTC).
var EpochJ2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// ErrNoPeriod is returned when an orbit was configured with neither an
// explicit period nor a gravitational parameter to derive one from.
var ErrNoPeriod = errors.New("orbit has no period and no gravitational parameter")

// Orbit is an immutable set of Keplerian orbital elements with the reference
// plane taken to be the ecliptic. Position at a time is found by linear
// mean-anomaly propagation and a truncated equation-of-center series, good
// for low to moderate eccentricities.
type Orbit struct {
	Eccen     float64 // eccentricity, in [0, 1)
	SemiMajor float64 // semimajor axis in km
	Inclin    Angle   // inclination against the ecliptic
	LongAsc   Angle   // longitude of the ascending node
	ArgPeri   Angle   // argument of periapsis
	MeanAnom  Angle   // mean anomaly at Epoch
	Epoch     time.Time

	period time.Duration // explicit period, or zero
	μ      float64       // gravitational parameter of the primary in km^3/s^2

	// fromOrbit carries orbital-plane coordinates into equatorial ones.
	fromOrbit Rotation

	cachedDT  time.Time
	cachedPos []float64
}

// NewOrbit creates an orbit from its elements. gm is the gravitational
// parameter GM of the body being orbited in km^3/s^2 and may be zero when an
// explicit period is given (or when the period will never be needed, as for
// a primary body). Range errors are reported at construction.
func NewOrbit(eccen, semimajor float64, inclin, longAsc, argPeri, meanAnom Angle, epoch time.Time, gm float64, period time.Duration) (*Orbit, error) {
	if eccen < 0 || eccen >= 1 {
		return nil, fmt.Errorf("eccentricity must be in [0, 1), got %g", eccen)
	}
	if semimajor <= 0 {
		return nil, fmt.Errorf("semimajor axis must be positive, got %g km", semimajor)
	}
	o := Orbit{
		Eccen: eccen, SemiMajor: semimajor,
		Inclin: inclin, LongAsc: longAsc, ArgPeri: argPeri,
		MeanAnom: meanAnom, Epoch: epoch,
		period: period, μ: gm,
	}
	// Apply argument of periapsis, then inclination, then longitude of the
	// ascending node to reach the ecliptic; tilt by the obliquity to reach
	// equatorial coordinates.
	o.fromOrbit = NewRotation(1, 0, 0, EarthObliquity).
		Mul(NewRotation(0, 0, 1, longAsc.Rad())).
		Mul(NewRotation(1, 0, 0, inclin.Rad())).
		Mul(NewRotation(0, 0, 1, argPeri.Rad()))
	return &o, nil
}

// GM returns the gravitational parameter of the primary.
func (o *Orbit) GM() float64 {
	return o.μ
}

// Period returns the orbital period: the explicit one when configured,
// otherwise derived from the gravitational parameter via Kepler's third law.
// Returns ErrNoPeriod when neither is available, as for a primary body.
func (o *Orbit) Period() (time.Duration, error) {
	if o.period != 0 {
		return o.period, nil
	}
	if o.μ <= 0 {
		return 0, ErrNoPeriod
	}
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.SemiMajor, 3)/o.μ)
	return time.Duration(seconds * float64(time.Second)), nil
}

// Periapsis returns the periapsis distance in km.
func (o *Orbit) Periapsis() float64 {
	return o.SemiMajor * (1 - o.Eccen)
}

// Apoapsis returns the apoapsis distance in km.
func (o *Orbit) Apoapsis() float64 {
	return o.SemiMajor * (1 + o.Eccen)
}

// TrueAnomaly approximates the true anomaly for a mean anomaly M using the
// equation-of-center series truncated at third order in the eccentricity.
func (o *Orbit) TrueAnomaly(M float64) float64 {
	e := o.Eccen
	return M + (2*e-e*e*e/4)*math.Sin(M) +
		1.25*e*e*math.Sin(2*M) +
		(13.0/12.0)*e*e*e*math.Sin(3*M)
}

// Position returns the position in km of the orbiting body relative to its
// primary, in equatorial coordinates, at the given time. The most recently
// queried instant is memoized; the returned slice is the caller's to keep.
func (o *Orbit) Position(dt time.Time) ([]float64, error) {
	if o.cachedPos == nil || !dt.Equal(o.cachedDT) {
		T, err := o.Period()
		if err != nil {
			return nil, err
		}
		days := julian.TimeToJD(dt) - julian.TimeToJD(o.Epoch)
		M := 2*math.Pi*days*secondsPerDay/T.Seconds() + o.MeanAnom.Rad()
		ν := o.TrueAnomaly(M)
		sinν, cosν := math.Sincos(ν)
		r := o.SemiMajor * (1 - o.Eccen*o.Eccen) / (1 + o.Eccen*cosν)
		o.cachedDT = dt
		o.cachedPos = o.fromOrbit.RotateVector([]float64{r * cosν, r * sinν, 0})
	}
	return append([]float64(nil), o.cachedPos...), nil
}

// String implements the Stringer interface.
func (o *Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f M=%.3f",
		o.SemiMajor, o.Eccen, o.Inclin.Deg(), o.LongAsc.Deg(), o.ArgPeri.Deg(), o.MeanAnom.Deg())
}
