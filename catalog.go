package orrery

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// ErrNotFound is returned by catalog lookups when no entry matches the
// requested name or alias.
var ErrNotFound = errors.New("no object with that name or alias")

// Catalog stores the set of known solar-system bodies and deep-sky objects.
// Lookup is by case-insensitive name or alias.
type Catalog struct {
	Bodies   []*Body
	Stellars []*Stellar
}

// Len returns the total number of objects in the catalog.
func (c *Catalog) Len() int {
	return len(c.Bodies) + len(c.Stellars)
}

// All returns every object in the catalog, bodies first.
func (c *Catalog) All() []Object {
	objs := make([]Object, 0, c.Len())
	for _, bd := range c.Bodies {
		objs = append(objs, bd)
	}
	for _, st := range c.Stellars {
		objs = append(objs, st)
	}
	return objs
}

// Get returns the object with the given name or alias, or ErrNotFound.
func (c *Catalog) Get(name string) (Object, error) {
	for _, bd := range c.Bodies {
		if bd.HasName(name) {
			return bd, nil
		}
	}
	for _, st := range c.Stellars {
		if st.HasName(name) {
			return st, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// GetBody returns the body with the given name or alias, or ErrNotFound.
// Deep-sky objects are not searched.
func (c *Catalog) GetBody(name string) (*Body, error) {
	for _, bd := range c.Bodies {
		if bd.HasName(name) {
			return bd, nil
		}
	}
	return nil, fmt.Errorf("%w: no body named %q", ErrNotFound, name)
}

// Delete removes every object sharing any name or alias with named and
// reports whether anything was removed.
func (c *Catalog) Delete(named Named) bool {
	found := false
	bodies := c.Bodies[:0]
	for _, bd := range c.Bodies {
		if bd.SharesName(named) {
			found = true
		} else {
			bodies = append(bodies, bd)
		}
	}
	c.Bodies = bodies
	stellars := c.Stellars[:0]
	for _, st := range c.Stellars {
		if st.SharesName(named) {
			found = true
		} else {
			stellars = append(stellars, st)
		}
	}
	c.Stellars = stellars
	return found
}

// AppendBody adds a body, removing any existing entry whose name set
// intersects the new one. Reports whether an entry was overwritten.
func (c *Catalog) AppendBody(bd *Body) bool {
	over := c.Delete(bd.Named)
	c.Bodies = append(c.Bodies, bd)
	return over
}

// AppendStellar adds a deep-sky object, removing any existing entry whose
// name set intersects the new one. Reports whether an entry was overwritten.
func (c *Catalog) AppendStellar(st *Stellar) bool {
	over := c.Delete(st.Named)
	c.Stellars = append(c.Stellars, st)
	return over
}

// Load reads the XML catalog file at path and appends its objects.
func (c *Catalog) Load(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err = c.LoadReader(fp); err != nil {
		return fmt.Errorf("catalog file %s: %w", path, err)
	}
	return nil
}

// XML layouts of catalog entries. Numeric attributes are kept as strings so
// that a missing attribute can be told apart from a zero value.
type xmlOrbit struct {
	Eccen     string `xml:"eccentricity,attr"`
	SemiMajor string `xml:"semimajor,attr"`
	Period    string `xml:"period,attr"`
	Inclin    string `xml:"inclination,attr"`
	LongAsc   string `xml:"longitude-ascending,attr"`
	ArgPeri   string `xml:"argument-periapsis,attr"`
	Point     *struct {
		MeanAnom string `xml:"mean-anomaly,attr"`
		Epoch    string `xml:"epoch,attr"`
	} `xml:"point"`
}

type xmlRotation struct {
	Period string `xml:"period,attr"`
	Pole   *struct {
		RightAsc string `xml:"right-asc,attr"`
		Decl     string `xml:"decl,attr"`
	} `xml:"pole"`
	Point *struct {
		Meridian string `xml:"meridian,attr"`
		Epoch    string `xml:"epoch,attr"`
	} `xml:"point"`
}

type xmlBody struct {
	Name     string       `xml:"name,attr"`
	Type     string       `xml:"type,attr"`
	Parent   string       `xml:"parent,attr"`
	Symbol   string       `xml:"symbol,attr"`
	Aliases  []string     `xml:"alias"`
	Orbit    *xmlOrbit    `xml:"orbit"`
	Rotation *xmlRotation `xml:"rotation"`
	Physical *struct {
		Mass       string `xml:"mass,attr"`
		MeanRadius string `xml:"mean-radius,attr"`
		Density    string `xml:"density,attr"`
	} `xml:"physical"`
}

type xmlStellar struct {
	Name     string   `xml:"name,attr"`
	Type     string   `xml:"type,attr"`
	Constell string   `xml:"constellation,attr"`
	Aliases  []string `xml:"alias"`
	Location *struct {
		RightAsc string `xml:"right-asc,attr"`
		Decl     string `xml:"decl,attr"`
		Dist     string `xml:"distance,attr"`
	} `xml:"location"`
	Magnitude *struct {
		Apparent string `xml:"apparent,attr"`
		Absolute string `xml:"absolute,attr"`
	} `xml:"magnitude"`
	Motion *struct {
		RightAsc string `xml:"right-asc,attr"`
		Decl     string `xml:"decl,attr"`
		Radial   string `xml:"radial,attr"`
	} `xml:"motion"`
}

// LoadReader reads an XML catalog from r and appends its objects. Entries
// are processed in document order so a body's parent must appear before it.
func (c *Catalog) LoadReader(r io.Reader) error {
	dec := xml.NewDecoder(r)
	var root *xml.StartElement
	for root == nil {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "catalog" {
				return fmt.Errorf("root of catalog must be <catalog>, got <%s>", start.Name.Local)
			}
			root = &start
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "body":
			var xb xmlBody
			if err = dec.DecodeElement(&xb, &start); err != nil {
				return fmt.Errorf("reading catalog: %w", err)
			}
			bd, err := c.bodyFromXML(&xb)
			if err != nil {
				return err
			}
			c.AppendBody(bd)
		case "stellar":
			var xs xmlStellar
			if err = dec.DecodeElement(&xs, &start); err != nil {
				return fmt.Errorf("reading catalog: %w", err)
			}
			st, err := stellarFromXML(&xs)
			if err != nil {
				return err
			}
			c.AppendStellar(st)
		default:
			return fmt.Errorf("unknown tag <%s> in catalog", start.Name.Local)
		}
	}
}

// attrFloat parses an optional float attribute, returning def when absent.
func attrFloat(s, name string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return v, nil
}

// attrAngle parses an optional degree-valued angle attribute.
func attrAngle(s, name string, def Angle) (Angle, error) {
	if s == "" {
		return def, nil
	}
	a, err := ParseAngleDeg(s)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %w", name, err)
	}
	return a, nil
}

// attrEpoch parses an optional ISO-8601 instant, defaulting to J2000.
func attrEpoch(s, name string) (time.Time, error) {
	if s == "" {
		return EpochJ2000, nil
	}
	dt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		dt, err = time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("attribute %s: %w", name, err)
	}
	return dt, nil
}

// attrPeriod parses an optional period attribute given in seconds.
func attrPeriod(s, name string) (time.Duration, error) {
	secs, err := attrFloat(s, name, 0)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func (c *Catalog) bodyFromXML(xb *xmlBody) (*Body, error) {
	if xb.Name == "" {
		return nil, errors.New("body element is missing a name")
	}
	fail := func(err error) (*Body, error) {
		return nil, fmt.Errorf("body %q: %w", xb.Name, err)
	}
	if xb.Type == "" {
		return fail(errors.New("missing a type"))
	}
	tp, err := BodyTypeFromString(xb.Type)
	if err != nil {
		return fail(err)
	}

	var parent *Body
	if xb.Parent != "" {
		if parent, err = c.GetBody(xb.Parent); err != nil {
			return fail(err)
		}
	}

	if xb.Orbit == nil || xb.Orbit.Point == nil {
		return fail(errors.New("missing orbital elements"))
	}
	xo := xb.Orbit
	if xo.Eccen == "" || xo.SemiMajor == "" || xo.Inclin == "" ||
		xo.LongAsc == "" || xo.ArgPeri == "" || xo.Point.MeanAnom == "" {
		return fail(errors.New("incomplete orbital elements"))
	}
	eccen, err := strconv.ParseFloat(xo.Eccen, 64)
	if err != nil {
		return fail(fmt.Errorf("attribute eccentricity: %w", err))
	}
	semimajor, err := strconv.ParseFloat(xo.SemiMajor, 64)
	if err != nil {
		return fail(fmt.Errorf("attribute semimajor: %w", err))
	}
	inclin, err := attrAngle(xo.Inclin, "inclination", 0)
	if err != nil {
		return fail(err)
	}
	longAsc, err := attrAngle(xo.LongAsc, "longitude-ascending", 0)
	if err != nil {
		return fail(err)
	}
	argPeri, err := attrAngle(xo.ArgPeri, "argument-periapsis", 0)
	if err != nil {
		return fail(err)
	}
	meanAnom, err := attrAngle(xo.Point.MeanAnom, "mean-anomaly", 0)
	if err != nil {
		return fail(err)
	}
	epoch, err := attrEpoch(xo.Point.Epoch, "epoch")
	if err != nil {
		return fail(err)
	}
	period, err := attrPeriod(xo.Period, "period")
	if err != nil {
		return fail(err)
	}

	gm := 0.0
	if parent != nil {
		gm = GravConst * parent.Mass
	}
	orbit, err := NewOrbit(eccen, semimajor, inclin, longAsc, argPeri, meanAnom, epoch, gm, period)
	if err != nil {
		return fail(err)
	}

	var rotator *Rotator
	if xr := xb.Rotation; xr != nil {
		rotPeriod, err := attrPeriod(xr.Period, "rotation period")
		if err != nil {
			return fail(err)
		}
		meridian, rotEpoch := Angle(0), EpochJ2000
		if xr.Point != nil {
			if meridian, err = attrAngle(xr.Point.Meridian, "meridian", 0); err != nil {
				return fail(err)
			}
			if rotEpoch, err = attrEpoch(xr.Point.Epoch, "rotation epoch"); err != nil {
				return fail(err)
			}
		}
		if xr.Pole != nil {
			ra, err := attrAngle(xr.Pole.RightAsc, "pole right-asc", 0)
			if err != nil {
				return fail(err)
			}
			decl, err := attrAngle(xr.Pole.Decl, "pole decl", 0)
			if err != nil {
				return fail(err)
			}
			rotator = NewRotatorRADec(rotPeriod, meridian, rotEpoch, ra, decl)
		} else {
			rotator = NewRotator(rotPeriod, meridian, rotEpoch, nil)
		}
	}

	bd := NewBody(xb.Name, xb.Aliases, tp, orbit, rotator, parent)
	if xb.Symbol != "" {
		bd.Symbol = xb.Symbol
	}
	if xp := xb.Physical; xp != nil {
		if bd.Mass, err = attrFloat(xp.Mass, "mass", 0); err != nil {
			return fail(err)
		}
		if bd.MeanRadius, err = attrFloat(xp.MeanRadius, "mean-radius", 0); err != nil {
			return fail(err)
		}
		if bd.Density, err = attrFloat(xp.Density, "density", 0); err != nil {
			return fail(err)
		}
	}
	return bd, nil
}

func stellarFromXML(xs *xmlStellar) (*Stellar, error) {
	if xs.Name == "" {
		return nil, errors.New("stellar element is missing a name")
	}
	fail := func(err error) (*Stellar, error) {
		return nil, fmt.Errorf("stellar %q: %w", xs.Name, err)
	}
	tp := Star
	if xs.Type != "" {
		var err error
		if tp, err = StellarTypeFromString(xs.Type); err != nil {
			return fail(err)
		}
	}
	if xs.Location == nil || xs.Location.RightAsc == "" || xs.Location.Decl == "" {
		return fail(errors.New("missing location"))
	}
	ra, err := attrAngle(xs.Location.RightAsc, "right-asc", 0)
	if err != nil {
		return fail(err)
	}
	decl, err := attrAngle(xs.Location.Decl, "decl", 0)
	if err != nil {
		return fail(err)
	}

	st := NewStellar(xs.Name, xs.Aliases, tp, xs.Constell, ra, decl)
	if st.Dist, err = attrFloat(xs.Location.Dist, "distance", 0); err != nil {
		return fail(err)
	}
	if xm := xs.Magnitude; xm != nil {
		if st.AppMag, err = attrFloat(xm.Apparent, "apparent", math.NaN()); err != nil {
			return fail(err)
		}
		if st.AbsMag, err = attrFloat(xm.Absolute, "absolute", math.NaN()); err != nil {
			return fail(err)
		}
	}
	if xm := xs.Motion; xm != nil {
		if st.RAMotion, err = attrFloat(xm.RightAsc, "motion right-asc", 0); err != nil {
			return fail(err)
		}
		if st.DeclMotion, err = attrFloat(xm.Decl, "motion decl", 0); err != nil {
			return fail(err)
		}
		if st.RadialMotion, err = attrFloat(xm.Radial, "motion radial", 0); err != nil {
			return fail(err)
		}
	}
	return st, nil
}
