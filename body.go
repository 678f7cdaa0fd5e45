package orrery

import (
	"fmt"
	"strings"
	"time"
)

// Named identifies an object by a primary name plus any number of aliases.
// Identity is the canonicalized lowercase name; alias membership is an
// explicit check rather than an equality notion.
type Named struct {
	Name    string
	Aliases []string
}

// Key returns the canonical identity key for this object.
func (n Named) Key() string {
	return strings.ToLower(n.Name)
}

// HasName reports whether s matches the object's name or any alias,
// ignoring case.
func (n Named) HasName(s string) bool {
	s = strings.ToLower(s)
	if s == n.Key() {
		return true
	}
	for _, al := range n.Aliases {
		if s == strings.ToLower(al) {
			return true
		}
	}
	return false
}

// SharesName reports whether the two objects have any name or alias in
// common, ignoring case.
func (n Named) SharesName(o Named) bool {
	if o.HasName(n.Name) {
		return true
	}
	for _, al := range n.Aliases {
		if o.HasName(al) {
			return true
		}
	}
	return false
}

// Object is any catalog entry that can be located by name.
type Object interface {
	HasName(name string) bool
}

// BodyType tags the kind of a solar-system body.
type BodyType uint8

const (
	SunType BodyType = iota
	Planet
	MoonType
	DwarfPlanet
	Asteroid
	Comet
)

// String implements the Stringer interface.
func (t BodyType) String() string {
	switch t {
	case SunType:
		return "Sun"
	case Planet:
		return "Planet"
	case MoonType:
		return "Moon"
	case DwarfPlanet:
		return "Dwarf Planet"
	case Asteroid:
		return "Asteroid"
	case Comet:
		return "Comet"
	default:
		panic(fmt.Errorf("unknown body type %d", t))
	}
}

// Symbol returns the marker drawn for bodies of this type.
func (t BodyType) Symbol() string {
	switch t {
	case SunType:
		return "<S>"
	case Planet:
		return "[Pl]"
	case MoonType:
		return "[m]"
	case DwarfPlanet:
		return "[d]"
	case Asteroid:
		return "[a]"
	case Comet:
		return "[c]"
	default:
		panic(fmt.Errorf("unknown body type %d", t))
	}
}

// BodyTypeFromString returns the body type with the given identifier.
func BodyTypeFromString(name string) (BodyType, error) {
	switch strings.ToLower(name) {
	case "sun":
		return SunType, nil
	case "planet":
		return Planet, nil
	case "moon":
		return MoonType, nil
	case "dwarf planet":
		return DwarfPlanet, nil
	case "asteroid":
		return Asteroid, nil
	case "comet":
		return Comet, nil
	default:
		return 0, fmt.Errorf("no body type with identifier %q", name)
	}
}

// Body is a solar-system object: something whose position changes with time
// by following an orbit around a parent body.
type Body struct {
	Named
	Type   BodyType
	Symbol string

	Orbit   *Orbit
	Rotator *Rotator
	// Parent is the body this one orbits; nil marks the primary body. The
	// reference is non-owning and the parent must already exist when the
	// child is constructed.
	Parent *Body

	Mass       float64 // kg; zero when unknown
	MeanRadius float64 // km; zero when unknown
	Density    float64 // g/mL; zero when unknown

	cachedDT  time.Time
	cachedPos []float64
}

// NewBody creates a body following orbit around parent. The symbol defaults
// to the one for the body's type.
func NewBody(name string, aliases []string, tp BodyType, orbit *Orbit, rotator *Rotator, parent *Body) *Body {
	return &Body{
		Named:   Named{Name: name, Aliases: aliases},
		Type:    tp,
		Symbol:  tp.Symbol(),
		Orbit:   orbit,
		Rotator: rotator,
		Parent:  parent,
	}
}

// Position returns the position of this body in reference coordinates (km)
// at the given time, found recursively as the body's orbital offset plus the
// parent's absolute position. The primary body sits at the origin. The most
// recently queried time is memoized; the returned slice is the caller's to
// keep.
func (b *Body) Position(dt time.Time) ([]float64, error) {
	if b.Parent == nil {
		return []float64{0, 0, 0}, nil
	}
	if b.cachedPos == nil || !dt.Equal(b.cachedDT) {
		own, err := b.Orbit.Position(dt)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", b.Name, err)
		}
		par, err := b.Parent.Position(dt)
		if err != nil {
			return nil, err
		}
		b.cachedDT = dt
		b.cachedPos = []float64{own[0] + par[0], own[1] + par[1], own[2] + par[2]}
	}
	return append([]float64(nil), b.cachedPos...), nil
}

// String implements the Stringer interface.
func (b *Body) String() string {
	return b.Name + " body"
}
