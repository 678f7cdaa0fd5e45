package orrery

import (
	"math"
	"time"
)

// Built-in solar-system objects with J2000 osculating elements and IAU
// rotational constants. A catalog file can overwrite any of them.

func mustOrbit(eccen, semimajor float64, inclin, longAsc, argPeri, meanAnom Angle, gm float64, period time.Duration) *Orbit {
	o, err := NewOrbit(eccen, semimajor, inclin, longAsc, argPeri, meanAnom, EpochJ2000, gm, period)
	if err != nil {
		panic(err)
	}
	return o
}

func days(d float64) time.Duration {
	return time.Duration(d * secondsPerDay * float64(time.Second))
}

const (
	sunMass   = 1.98892e30 // kg
	earthMass = 5.9722e24  // kg
	sunGM     = GravConst * sunMass
	earthGM   = GravConst * earthMass
)

// Sun is the primary body and sits at the origin of the reference frame.
var Sun = &Body{
	Named:  Named{Name: "Sun", Aliases: []string{"Sol"}},
	Type:   SunType,
	Symbol: SunType.Symbol(),
	Rotator: NewRotatorRADec(days(25.38), AngleFromDeg(84.176), EpochJ2000,
		AngleFromDeg(286.13), AngleFromDeg(63.87)),
	Mass: sunMass, MeanRadius: 695700, Density: 1.408,
}

var Mercury = &Body{
	Named:  Named{Name: "Mercury"},
	Type:   Planet,
	Symbol: Planet.Symbol(),
	Orbit: mustOrbit(0.20563069, 0.38709893*AU,
		AngleFromDeg(7.00487), AngleFromDeg(48.33167),
		AngleFromDeg(29.12478), AngleFromDeg(174.79439), sunGM, 0),
	Rotator: NewRotatorRADec(days(58.6462), AngleFromDeg(329.548), EpochJ2000,
		AngleFromDeg(281.01), AngleFromDeg(61.45)),
	Parent: Sun,
	Mass:   3.3011e23, MeanRadius: 2439.7, Density: 5.427,
}

var Venus = &Body{
	Named:  Named{Name: "Venus"},
	Type:   Planet,
	Symbol: Planet.Symbol(),
	Orbit: mustOrbit(0.00677323, 0.72333199*AU,
		AngleFromDeg(3.39471), AngleFromDeg(76.68069),
		AngleFromDeg(54.85229), AngleFromDeg(50.44675), sunGM, 0),
	// Retrograde spin.
	Rotator: NewRotatorRADec(days(-243.0185), AngleFromDeg(160.20), EpochJ2000,
		AngleFromDeg(272.76), AngleFromDeg(67.16)),
	Parent: Sun,
	Mass:   4.8675e24, MeanRadius: 6051.8, Density: 5.243,
}

var Earth = &Body{
	Named:  Named{Name: "Earth", Aliases: []string{"Terra"}},
	Type:   Planet,
	Symbol: Planet.Symbol(),
	Orbit: mustOrbit(0.01671022, 1.00000011*AU,
		AngleFromDeg(0.00005), AngleFromDeg(-11.26064),
		AngleFromDeg(114.20783), AngleFromDeg(357.51716), sunGM, 0),
	// The meridian offset is the Greenwich sidereal angle at J2000.
	Rotator: NewRotatorRADec(86164098900*time.Microsecond,
		Angle(2*math.Pi*0.7790572732640), EpochJ2000,
		AngleFromDeg(270), AngleFromDeg(90)),
	Parent: Sun,
	Mass:   earthMass, MeanRadius: 6371.0, Density: 5.514,
}

var Moon = &Body{
	Named:  Named{Name: "Moon", Aliases: []string{"Luna"}},
	Type:   MoonType,
	Symbol: MoonType.Symbol(),
	Orbit: mustOrbit(0.0549, 384400,
		AngleFromDeg(5.145), AngleFromDeg(125.08),
		AngleFromDeg(318.15), AngleFromDeg(135.27), earthGM, days(27.321661)),
	Rotator: NewRotatorRADec(days(27.321661), AngleFromDeg(38.3213), EpochJ2000,
		AngleFromDeg(269.9949), AngleFromDeg(66.5392)),
	Parent: Earth,
	Mass:   7.342e22, MeanRadius: 1737.4, Density: 3.344,
}

var Mars = &Body{
	Named:  Named{Name: "Mars"},
	Type:   Planet,
	Symbol: Planet.Symbol(),
	Orbit: mustOrbit(0.09341233, 1.52366231*AU,
		AngleFromDeg(1.85061), AngleFromDeg(49.57854),
		AngleFromDeg(286.4623), AngleFromDeg(19.41248), sunGM, 0),
	Rotator: NewRotatorRADec(88642663*time.Millisecond, AngleFromDeg(176.630), EpochJ2000,
		AngleFromDeg(317.68143), AngleFromDeg(52.88650)),
	Parent: Sun,
	Mass:   6.4171e23, MeanRadius: 3389.5, Density: 3.933,
}

var Jupiter = &Body{
	Named:  Named{Name: "Jupiter"},
	Type:   Planet,
	Symbol: Planet.Symbol(),
	Orbit: mustOrbit(0.04839266, 5.20336301*AU,
		AngleFromDeg(1.30530), AngleFromDeg(100.55615),
		AngleFromDeg(274.1977), AngleFromDeg(19.65053), sunGM, 0),
	Rotator: NewRotatorRADec(time.Duration(9.925*3600)*time.Second, AngleFromDeg(284.95), EpochJ2000,
		AngleFromDeg(268.056595), AngleFromDeg(64.495303)),
	Parent: Sun,
	Mass:   1.8982e27, MeanRadius: 69911, Density: 1.326,
}

func star(name, constell string, ra, decl Angle, dist, appmag, absmag float64, aliases ...string) *Stellar {
	st := NewStellar(name, aliases, Star, constell, ra, decl)
	st.Dist, st.AppMag, st.AbsMag = dist, appmag, absmag
	return st
}

var (
	Sirius = star("Sirius", "Canis Major",
		AngleFromHMS(6, 45, 8.9), AngleFromDMS(-16, 42, 58), 8.6, -1.46, 1.42,
		"Alpha Canis Majoris", "Dog Star")
	Polaris = star("Polaris", "Ursa Minor",
		AngleFromHMS(2, 31, 49), AngleFromDMS(89, 15, 51), 433, 1.98, -3.6,
		"Alpha Ursae Minoris", "North Star")
	Vega = star("Vega", "Lyra",
		AngleFromHMS(18, 36, 56.3), AngleFromDMS(38, 47, 1), 25.04, 0.03, 0.58,
		"Alpha Lyrae")
	Betelgeuse = star("Betelgeuse", "Orion",
		AngleFromHMS(5, 55, 10.3), AngleFromDMS(7, 24, 25), 548, 0.42, -5.85,
		"Alpha Orionis")
)

// DefaultCatalog returns a fresh catalog holding the built-in objects.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Bodies:   []*Body{Sun, Mercury, Venus, Earth, Moon, Mars, Jupiter},
		Stellars: []*Stellar{Sirius, Polaris, Vega, Betelgeuse},
	}
}
