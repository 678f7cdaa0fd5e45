package orrery

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNotDisplayable is returned when an object has no apparent direction for
// this observer, as for the body the observer is standing on.
var ErrNotDisplayable = errors.New("object is not displayable from here")

// visible records a window coordinate of an object currently on screen.
type visible struct {
	pos float64
	obj Object
}

// Observer holds the state of a viewer standing on a body: the instant and
// surface location of observation and the orientation of their viewport.
// Points in the viewport are sent to window coordinates by a local Mercator
// projection.
type Observer struct {
	// view carries horizontal coordinates into the viewer's perspective.
	view Rotation
	// Width and Height are the angular extent of the viewport in radians.
	Width, Height float64

	body *Body
	time time.Time
	loc  SpherePoint
	// offset from the wall clock; nil for a static observer.
	offset *time.Duration

	toView   *Rotation
	byX, byY []visible
	Selected Object
}

// NewObserver creates an observer on body at the given surface location and
// instant. wid and hei set the viewport extent in radians. When sync is true
// the observer tracks the wall clock, holding the initial offset from it.
func NewObserver(dt time.Time, loc SpherePoint, body *Body, wid, hei float64, sync bool) *Observer {
	o := Observer{
		view:  Identity(),
		Width: wid, Height: hei,
		body: body, time: dt, loc: loc,
	}
	if sync {
		off := time.Until(dt)
		o.offset = &off
	}
	return &o
}

// Body returns the body the observer is standing on.
func (o *Observer) Body() *Body {
	return o.body
}

// Time returns the instant of observation.
func (o *Observer) Time() time.Time {
	return o.time
}

// Location returns the observer's surface location.
func (o *Observer) Location() SpherePoint {
	return o.loc
}

// SetTime moves the observation to a new instant.
func (o *Observer) SetTime(dt time.Time) {
	o.time = dt
	o.toView = nil
}

// SetLocation moves the observer to a new surface location.
func (o *Observer) SetLocation(loc SpherePoint) {
	o.loc = loc
	o.toView = nil
}

// UpdateTime advances a synchronized observer to the current wall-clock
// instant plus its offset. Static observers are unchanged.
func (o *Observer) UpdateTime() {
	if o.offset != nil {
		o.SetTime(time.Now().UTC().Add(*o.offset))
	}
}

// LookUp tilts the view upward by angle radians from the viewer's
// perspective. Negative values tilt down.
func (o *Observer) LookUp(angle float64) {
	o.view = NewRotation(0, 1, 0, angle).Mul(o.view)
	o.toView = nil
}

// LookRight pans the view rightward by angle radians from the viewer's
// perspective. Negative values pan left.
func (o *Observer) LookRight(angle float64) {
	o.view = NewRotation(0, 0, 1, angle).Mul(o.view)
	o.toView = nil
}

// LookClock rolls the view clockwise by angle radians about its center.
// Negative values roll counter-clockwise.
func (o *Observer) LookClock(angle float64) {
	o.view = NewRotation(-1, 0, 0, angle).Mul(o.view)
	o.toView = nil
}

// LookTo turns the view toward point, given in horizontal coordinates,
// moving the fraction prop of the way there.
func (o *Observer) LookTo(point SpherePoint, prop float64) {
	appar := o.view.RotatePoint(point)
	o.view = MoveTo(appar, NewSpherePoint(0, 0), prop).Mul(o.view)
	o.toView = nil
}

// Center returns the point in horizontal coordinates at the center of the
// viewport.
func (o *Observer) Center() SpherePoint {
	return o.view.Inverse().RotatePoint(NewSpherePoint(0, 0))
}

// Position returns the observer's position in reference coordinates (km).
func (o *Observer) Position() ([]float64, error) {
	return o.body.Position(o.time)
}

// ToRef finds the apparent direction of an object in reference coordinates.
// Solar-system bodies are seen along the difference of positions so nearby
// objects show parallax; deep-sky objects are fixed directions. The
// observer's own body has no direction and yields ErrNotDisplayable.
func (o *Observer) ToRef(obj Object) (SpherePoint, error) {
	switch obj := obj.(type) {
	case *Body:
		if obj == o.body {
			return SpherePoint{}, fmt.Errorf("%w: observing from %s", ErrNotDisplayable, obj.Name)
		}
		pos, err := obj.Position(o.time)
		if err != nil {
			return SpherePoint{}, err
		}
		own, err := o.Position()
		if err != nil {
			return SpherePoint{}, err
		}
		return NewSpherePointFromVector(pos[0]-own[0], pos[1]-own[1], pos[2]-own[2]), nil
	case *Stellar:
		return obj.Point, nil
	default:
		return SpherePoint{}, fmt.Errorf("cannot locate object of type %T", obj)
	}
}

// ToHoriz returns the transformation from reference coordinates to the
// observer's horizontal coordinates.
func (o *Observer) ToHoriz() (Rotation, error) {
	if o.body.Rotator == nil {
		return Rotation{}, fmt.Errorf("%s has no rotation model: %w", o.body.Name, ErrNoPole)
	}
	return o.body.Rotator.Rotation(o.time, o.loc)
}

// ToView returns the transformation from reference coordinates to the
// viewer's perspective, caching it until the view, time or location changes.
func (o *Observer) ToView() (Rotation, error) {
	if o.toView != nil {
		return *o.toView, nil
	}
	horiz, err := o.ToHoriz()
	if err != nil {
		return Rotation{}, err
	}
	tv := o.view.Mul(horiz)
	o.toView = &tv
	return tv, nil
}

// HorizToWindow projects a point in horizontal coordinates onto the window.
// Both coordinates range over [0, 1) inside the window.
func (o *Observer) HorizToWindow(pt SpherePoint) (x, y float64) {
	pt = o.view.RotatePoint(pt)
	return 0.5 - pt.Long()/o.Width, 0.5 - pt.Lat()/o.Height
}

// ObjToWindow projects an object onto the window and records it in the
// visible-object lists when it lands inside. The observer's own body is
// reported not on screen without error.
func (o *Observer) ObjToWindow(obj Object) (x, y float64, onScreen bool, err error) {
	point, err := o.ToRef(obj)
	if errors.Is(err, ErrNotDisplayable) {
		return -1, -1, false, nil
	} else if err != nil {
		return -1, -1, false, err
	}
	tv, err := o.ToView()
	if err != nil {
		return -1, -1, false, err
	}
	point = tv.RotatePoint(point)
	x, y = 0.5-point.Long()/o.Width, 0.5-point.Lat()/o.Height
	if x >= 0 && x < 1 && y >= 0 && y < 1 {
		o.addVisible(obj, x, y)
		onScreen = true
	}
	return x, y, onScreen, nil
}

// addVisible inserts obj into the ordered visible-object lists.
func (o *Observer) addVisible(obj Object, x, y float64) {
	i := sort.Search(len(o.byX), func(i int) bool { return o.byX[i].pos >= x })
	o.byX = append(o.byX, visible{})
	copy(o.byX[i+1:], o.byX[i:])
	o.byX[i] = visible{x, obj}

	i = sort.Search(len(o.byY), func(i int) bool { return o.byY[i].pos >= y })
	o.byY = append(o.byY, visible{})
	copy(o.byY[i+1:], o.byY[i:])
	o.byY[i] = visible{y, obj}
}

// ClearVisible empties the visible-object lists, usually once per frame
// before reprojecting the catalog.
func (o *Observer) ClearVisible() {
	o.byX, o.byY = o.byX[:0], o.byY[:0]
}

// SelectBy moves the selection by shift places through the visible objects,
// ordered by x when byX is true and by y otherwise. The order wraps around.
// When the current selection is not on screen, a forward shift starts at the
// first object and a backward shift at the last.
func (o *Observer) SelectBy(shift int, byX bool) {
	lst := o.byY
	if byX {
		lst = o.byX
	}
	if len(lst) == 0 {
		o.Selected = nil
		return
	}
	ind := -1
	for i, vis := range lst {
		if vis.obj == o.Selected {
			ind = i
			break
		}
	}
	if ind < 0 {
		if shift >= 0 {
			ind = 0
		}
	} else {
		ind += shift
	}
	ind %= len(lst)
	if ind < 0 {
		ind += len(lst)
	}
	o.Selected = lst[ind].obj
}
