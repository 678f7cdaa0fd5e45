package orrery

import (
	"fmt"
	"math"
	"strings"
)

// StellarType tags the kind of a deep-sky object.
type StellarType uint8

const (
	Star StellarType = iota
	Nebula
	OpenCluster
)

// String implements the Stringer interface.
func (t StellarType) String() string {
	switch t {
	case Star:
		return "Star"
	case Nebula:
		return "Nebula"
	case OpenCluster:
		return "Open Cluster"
	default:
		panic(fmt.Errorf("unknown stellar type %d", t))
	}
}

// Symbol returns the marker drawn for objects of this type. Stars are marked
// by brightness instead of a fixed glyph.
func (t StellarType) Symbol() string {
	switch t {
	case Star:
		return "*"
	case Nebula:
		return "~N~"
	case OpenCluster:
		return "~O~"
	default:
		panic(fmt.Errorf("unknown stellar type %d", t))
	}
}

// StellarTypeFromString returns the stellar type with the given identifier.
func StellarTypeFromString(name string) (StellarType, error) {
	switch strings.ToLower(name) {
	case "star":
		return Star, nil
	case "nebula":
		return Nebula, nil
	case "open cluster":
		return OpenCluster, nil
	default:
		return 0, fmt.Errorf("no stellar type with identifier %q", name)
	}
}

// magSymbols maps apparent-magnitude bands to display markers, brightest
// first. Bands are bounded above by magnitudes 0, 1, 2, 3, 4, 5 and 6.
var magSymbols = [...]string{"{@}", "(#)", "(*)", "(\")", "#", "*", "\""}

// Stellar is a fixed deep-sky object: a star, nebula or cluster far enough
// away that its direction does not change with the observer's position
// within the solar system.
type Stellar struct {
	Named
	Type     StellarType
	Constell string // constellation the object belongs to, or empty

	// Point holds the equatorial direction: latitude is the declination and
	// longitude the right ascension.
	Point SpherePoint
	Dist  float64 // distance in light-years; zero when unknown

	AppMag float64 // apparent magnitude; NaN when unknown
	AbsMag float64 // absolute magnitude; NaN when unknown

	// Proper and radial motion are carried through the catalog but not
	// applied when positioning.
	RAMotion     float64 // mas/yr
	DeclMotion   float64 // mas/yr
	RadialMotion float64 // km/s
}

// NewStellar creates a deep-sky object at the given equatorial direction
// with unknown magnitudes.
func NewStellar(name string, aliases []string, tp StellarType, constell string, rightAsc, decl Angle) *Stellar {
	return &Stellar{
		Named:    Named{Name: name, Aliases: aliases},
		Type:     tp,
		Constell: constell,
		Point:    NewSpherePointFromAngles(decl, rightAsc),
		AppMag:   math.NaN(),
		AbsMag:   math.NaN(),
	}
}

// Symbol returns the marker drawn for this object. Stars brighter than
// magnitude 6 get a marker for their brightness band; anything dimmer or of
// unknown brightness gets the dimmest marker.
func (s *Stellar) Symbol() string {
	if s.Type != Star {
		return s.Type.Symbol()
	}
	if !math.IsNaN(s.AppMag) {
		for i, sym := range magSymbols {
			if s.AppMag < float64(i) {
				return sym
			}
		}
	}
	return "`"
}

// String implements the Stringer interface.
func (s *Stellar) String() string {
	if s.Constell != "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.Constell)
	}
	return s.Name
}
