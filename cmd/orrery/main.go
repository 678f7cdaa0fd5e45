package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/TannerReese/orrery"
)

const dateFormat = "2006-01-02 15:04:05"

var (
	timeStr  string
	locStr   string
	bodyName string
	width    float64
	height   float64
	catalogs string
)

var cardinals = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func init() {
	flag.StringVar(&timeStr, "time", "", "time of observation (defaults to now), e.g. \"2026-08-30 21:00:00\"")
	flag.StringVar(&locStr, "location", "", "location on the surface, e.g. \"40.7N 74.0W\"")
	flag.StringVar(&bodyName, "body", "", "body observed from (defaults to Earth)")
	flag.Float64Var(&width, "width", 0, "viewport width in degrees")
	flag.Float64Var(&height, "height", 0, "viewport height in degrees")
	flag.StringVar(&catalogs, "catalog", "", "comma-separated catalog XML files to load")
}

func main() {
	flag.Parse()
	obs, cat := setup()

	switch flag.Arg(0) {
	case "", "list":
		listVisible(obs, cat)
	case "ephemeris":
		if flag.NArg() < 2 {
			log.Fatal("ephemeris requires an output file name")
		}
		conf := orrery.ExportConfig{
			Filename:  flag.Arg(1),
			Timestamp: true,
			Start:     obs.Time(),
			End:       obs.Time().Add(365 * 24 * time.Hour),
			Step:      24 * time.Hour,
		}
		if err := orrery.ExportEphemeris(conf, cat.Bodies); err != nil {
			log.Fatalf("%s", err)
		}
		log.Printf("[info] exported one year of daily positions for %d bodies\n", len(cat.Bodies))
	case "show":
		if flag.NArg() < 2 {
			log.Fatal("show requires an object name")
		}
		obj, err := cat.Get(flag.Arg(1))
		if err != nil {
			log.Fatalf("%s", err)
		}
		fields := make([]string, 0)
		for _, f := range flag.Args()[2:] {
			fields = append(fields, strings.ToLower(f))
		}
		showObject(obs, obj, fields)
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
}

// setup merges flags over the configuration file and builds the observer and
// catalog.
func setup() (*orrery.Observer, *orrery.Catalog) {
	cat := orrery.DefaultCatalog()
	paths := orrery.ConfigCatalogPaths()
	if catalogs != "" {
		paths = append(paths, strings.Split(catalogs, ",")...)
	}
	for _, path := range paths {
		if err := cat.Load(path); err != nil {
			log.Printf("[warning] skipping catalog: %s\n", err)
		}
	}

	dt := time.Now().UTC()
	if timeStr != "" {
		var err error
		if dt, err = time.Parse(dateFormat, timeStr); err != nil {
			log.Fatalf("cannot parse time %q: %s", timeStr, err)
		}
	}

	if locStr == "" {
		locStr = orrery.ConfigLocation()
	}
	loc := orrery.NewSpherePoint(0, 0)
	if locStr != "" {
		var err error
		if loc, err = orrery.ParseLatLong(locStr); err != nil {
			log.Fatalf("cannot parse location %q: %s", locStr, err)
		}
	}

	if bodyName == "" {
		bodyName = orrery.ConfigBody()
	}
	body, err := cat.GetBody(bodyName)
	if err != nil {
		log.Fatalf("%s", err)
	}

	wid, hei := orrery.ConfigViewport()
	if width > 0 {
		wid = width
	}
	if height > 0 {
		hei = height
	}
	log.Printf("[info] observing from %s at %s (%s UTC)\n", body.Name, loc.GeoFormat(), dt.Format(dateFormat))
	return orrery.NewObserver(dt, loc, body, orrery.Deg2rad(wid), orrery.Deg2rad(hei), false), cat
}

// listVisible projects the whole catalog and prints the objects that land in
// the window, sorted by altitude.
func listVisible(obs *orrery.Observer, cat *orrery.Catalog) {
	type line struct {
		alt, az float64
		text    string
	}
	lines := make([]line, 0)
	for _, obj := range cat.All() {
		x, y, onScreen, err := obs.ObjToWindow(obj)
		if err != nil {
			log.Printf("[warning] %s\n", err)
			continue
		}
		if !onScreen {
			continue
		}
		pt, _ := obs.ToRef(obj)
		horiz, err := obs.ToHoriz()
		if err != nil {
			log.Fatalf("%s", err)
		}
		hp := horiz.RotatePoint(pt)
		alt := hp.LatAngle().Deg()
		az := math.Mod(360-hp.LongAngle().Deg(), 360)
		name, symbol := describe(obj)
		lines = append(lines, line{alt, az, fmt.Sprintf(
			"%-5s %-20s x=%.3f y=%.3f   alt %6.2fd  az %6.2fd %s",
			symbol, name, x, y, alt, az, cardinal(az))})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].alt > lines[j].alt })
	fmt.Printf("%d objects in view:\n", len(lines))
	for _, ln := range lines {
		fmt.Println(ln.text)
	}
}

func describe(obj orrery.Object) (name, symbol string) {
	switch obj := obj.(type) {
	case *orrery.Body:
		return obj.Name, obj.Symbol
	case *orrery.Stellar:
		return obj.Name, obj.Symbol()
	default:
		return fmt.Sprintf("%v", obj), "?"
	}
}

// cardinal names the compass direction of an azimuth in degrees.
func cardinal(az float64) string {
	ind := int(math.Round(az/22.5)) % len(cardinals)
	return cardinals[ind]
}

// doField reports whether a field was requested; an empty filter requests
// everything.
func doField(fields []string, name string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

// showObject prints the requested fields of a catalog object.
func showObject(obs *orrery.Observer, obj orrery.Object, fields []string) {
	switch obj := obj.(type) {
	case *orrery.Body:
		showBody(obs, obj, fields)
	case *orrery.Stellar:
		showStellar(obs, obj, fields)
	}
}

func showAltAzPoint(obs *orrery.Observer, pt orrery.SpherePoint, fields []string) {
	if doField(fields, "altaz") {
		if horiz, err := obs.ToHoriz(); err == nil {
			hp := horiz.RotatePoint(pt)
			az := math.Mod(360-hp.LongAngle().Deg(), 360)
			fmt.Printf("(Alt, Az):  %fd ,  %fd\n", hp.LatAngle().Deg(), az)
		}
	}
	if doField(fields, "point") {
		fmt.Printf("(RA, Dec):  %s ,  %s\n", pt.LongAngle().HMSString(), pt.LatAngle().DMSString())
	}
}

func showBody(obs *orrery.Observer, bd *orrery.Body, fields []string) {
	if bd.Parent != nil && doField(fields, "parent") {
		fmt.Printf("%s    (%s)\n", bd.Name, bd.Parent.Name)
	} else {
		fmt.Println(bd.Name)
	}
	if doField(fields, "aliases") && len(bd.Aliases) > 0 {
		fmt.Println(strings.Join(bd.Aliases, "  |  "))
	}

	if radec, err := obs.ToRef(bd); err == nil {
		showAltAzPoint(obs, radec, fields)
	}

	if o := bd.Orbit; o != nil {
		if doField(fields, "eccen") {
			fmt.Printf("Eccentricity: %g\n", o.Eccen)
		}
		if doField(fields, "semimajor") {
			fmt.Printf("Semimajor Axis: %g km\n", o.SemiMajor)
		}
		if doField(fields, "inclin") {
			fmt.Printf("Inclination: %g degrees\n", o.Inclin.Deg())
		}
		if doField(fields, "long-asc") {
			fmt.Printf("Longitude of the Ascending Node: %g degrees\n", o.LongAsc.Deg())
		}
		if doField(fields, "arg-peri") {
			fmt.Printf("Argument of Periapsis: %g degrees\n", o.ArgPeri.Deg())
		}
		if doField(fields, "period") {
			if T, err := o.Period(); err == nil {
				fmt.Printf("Orbital Period: %s\n", T)
			}
		}
	}

	if r := bd.Rotator; r != nil {
		if doField(fields, "rot-period") && r.Period != 0 {
			fmt.Printf("Sidereal Rotation Period: %s\n", r.Period)
		}
		if pole, ok := r.Pole(); ok && doField(fields, "pole") {
			fmt.Printf("Pole (RA, Dec): %s ,  %s\n", pole.LongAngle().HMSString(), pole.LatAngle().DMSString())
		}
	}

	if doField(fields, "mass") && bd.Mass != 0 {
		fmt.Printf("Mass: %g kg\n", bd.Mass)
	}
	if doField(fields, "mean-radius") && bd.MeanRadius != 0 {
		fmt.Printf("Mean Radius: %g km\n", bd.MeanRadius)
	}
	if doField(fields, "density") && bd.Density != 0 {
		fmt.Printf("Density: %g g/mL\n", bd.Density)
	}
}

func showStellar(obs *orrery.Observer, st *orrery.Stellar, fields []string) {
	if st.Constell != "" && doField(fields, "constell") {
		fmt.Printf("%s    (%s)\n", st.Name, st.Constell)
	} else {
		fmt.Println(st.Name)
	}
	if doField(fields, "aliases") && len(st.Aliases) > 0 {
		fmt.Println(strings.Join(st.Aliases, "  |  "))
	}

	showAltAzPoint(obs, st.Point, fields)

	if doField(fields, "appmag") && !math.IsNaN(st.AppMag) {
		fmt.Printf("App Mag: %g    ", st.AppMag)
	}
	if doField(fields, "absmag") && !math.IsNaN(st.AbsMag) {
		fmt.Printf("Abs Mag: %g", st.AbsMag)
	}
	fmt.Println()
	if doField(fields, "dist") && st.Dist != 0 {
		fmt.Printf("Distance: %g ly\n", st.Dist)
	}
	if doField(fields, "radial-motion") && st.RadialMotion != 0 {
		fmt.Printf("Radial Motion: %f km/s\n", st.RadialMotion)
	}
	if doField(fields, "proper-motion") && (st.RAMotion != 0 || st.DeclMotion != 0) {
		fmt.Printf("Proper Motion (RA, Dec): %f mas/yr,  %f mas/yr\n", st.RAMotion, st.DeclMotion)
	}
}
