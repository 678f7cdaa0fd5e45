package orrery

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	// orthoε is the tolerance used when validating that a matrix is special
	// orthogonal. This is the only validation boundary in the geometry core:
	// it catches composition-order bugs early.
	orthoε = 1e-9
)

// Rotation is an immutable proper rotation in 3-space, stored as a 3x3
// orthonormal matrix with determinant +1.
type Rotation struct {
	m *mat64.Dense
	// axis and angle are authoritative only when the rotation was built from
	// axis-angle form; otherwise they are derived on demand.
	axis  []float64
	angle float64
	hasAA bool
}

// NewRotation builds the rotation about the axis (x, y, z) by the given
// angle in radians, oriented by the right-hand rule. The axis need not be
// unit length. Panics when the axis is the zero vector, which is a
// programmer error.
func NewRotation(x, y, z, angle float64) Rotation {
	m := math.Sqrt(x*x + y*y + z*z)
	if m == 0 {
		panic("rotation axis vector must be non-zero")
	}
	x, y, z = x/m, y/m, z/m
	s, c := math.Sincos(angle)
	vs := 1 - c // versine
	mat := mat64.NewDense(3, 3, []float64{
		c + x*x*vs, x*y*vs - z*s, x*z*vs + y*s,
		y*x*vs + z*s, c + y*y*vs, y*z*vs - x*s,
		z*x*vs - y*s, z*y*vs + x*s, c + z*z*vs,
	})
	return Rotation{m: mat, axis: []float64{x, y, z}, angle: angle, hasAA: true}
}

// NewRotationFromPoint builds the rotation about the axis through pt.
func NewRotationFromPoint(pt SpherePoint, angle float64) Rotation {
	v := pt.Vector()
	return NewRotation(v[0], v[1], v[2], angle)
}

// NewRotationFromRows builds a rotation directly from the rows of its
// matrix. The matrix is validated: each row must be unit length, the rows
// must be pairwise orthogonal, and the determinant must be +1, all within
// 1e-9. Violations panic with the offending matrix since a bad matrix here
// is a programmer error, not a user-input error.
func NewRotationFromRows(r1, r2, r3 []float64) Rotation {
	if len(r1) != 3 || len(r2) != 3 || len(r3) != 3 {
		panic("rows of rotation matrix must have three entries each")
	}
	m := mat64.NewDense(3, 3, []float64{
		r1[0], r1[1], r1[2],
		r2[0], r2[1], r2[2],
		r3[0], r3[1], r3[2],
	})
	checkSpecialOrtho(m)
	return Rotation{m: m}
}

// checkSpecialOrtho panics unless m is orthogonal with determinant +1.
func checkSpecialOrtho(m *mat64.Dense) {
	if det := mat64.Det(m); !floats.EqualWithinAbs(det, 1, orthoε) {
		panic(fmt.Sprintf("rotation matrix must have determinant one, but det(R) = %g\n%v", det, mat64.Formatted(m)))
	}
	rows := [3][]float64{m.RawRowView(0), m.RawRowView(1), m.RawRowView(2)}
	for i := 0; i < 3; i++ {
		if n := norm(rows[i]); !floats.EqualWithinAbs(n, 1, orthoε) {
			panic(fmt.Sprintf("rows of rotation matrix must be unit-length, but |row%d| = %g\n%v", i+1, n, mat64.Formatted(m)))
		}
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if d := dot(rows[i], rows[j]); !floats.EqualWithinAbs(d, 0, orthoε) {
			panic(fmt.Sprintf("rows of rotation matrix must be orthogonal to each other; row%d * row%d = %g", i+1, j+1, d))
		}
	}
}

// Identity returns the rotation that leaves all points fixed.
func Identity() Rotation {
	return NewRotation(0, 0, 1, 0)
}

// MoveTo builds the rotation that carries the point begin to the point end
// along the great circle between them. prop in [0, 1] scales the angular
// distance travelled: 0 stays at begin, 0.5 goes half way, 1 reaches end.
// Coincident endpoints yield the identity. Antipodal endpoints have no
// unique connecting rotation and panic.
func MoveTo(begin, end SpherePoint, prop float64) Rotation {
	u, v := begin.Vector(), end.Vector()
	axis := cross(u, v)
	ang := math.Acos(math.Max(-1, math.Min(1, dot(u, v))))
	if norm(axis) == 0 {
		if ang < math.Pi/2 {
			return Identity()
		}
		panic("no unique rotation between antipodal points")
	}
	return NewRotation(axis[0], axis[1], axis[2], ang*prop)
}

// Mul composes two rotations: (a.Mul(b)) applied to a vector applies b
// first, then a.
func (r Rotation) Mul(o Rotation) Rotation {
	var p mat64.Dense
	p.Mul(r.m, o.m)
	return Rotation{m: &p}
}

// Div multiplies this rotation by the inverse of o.
func (r Rotation) Div(o Rotation) Rotation {
	var p mat64.Dense
	p.Mul(r.m, o.m.T())
	return Rotation{m: &p}
}

// Inverse returns the inverse rotation, which for a rotation matrix is its
// transpose.
func (r Rotation) Inverse() Rotation {
	var p mat64.Dense
	p.Clone(r.m.T())
	inv := Rotation{m: &p}
	if r.hasAA {
		inv.axis = r.axis
		inv.angle = -r.angle
		inv.hasAA = true
	}
	return inv
}

// Axis returns the axis vector around which this rotation rotates. When the
// rotation was not built from axis-angle form the axis is recovered from the
// antisymmetric part of the matrix and is not unit length; it degenerates to
// the zero vector for half-turns.
func (r Rotation) Axis() []float64 {
	if r.hasAA {
		return r.axis
	}
	return []float64{
		r.m.At(2, 1) - r.m.At(1, 2),
		r.m.At(0, 2) - r.m.At(2, 0),
		r.m.At(1, 0) - r.m.At(0, 1),
	}
}

// Angle returns the angle by which this rotation rotates. When derived from
// the matrix trace the sign is lost: the result lies in [0, π].
func (r Rotation) Angle() float64 {
	if r.hasAA {
		return r.angle
	}
	tr := r.m.At(0, 0) + r.m.At(1, 1) + r.m.At(2, 2)
	return math.Acos(math.Max(-1, math.Min(1, (tr-1)/2)))
}

// RotateVector applies the rotation to a 3-dimensional vector.
func (r Rotation) RotateVector(v []float64) []float64 {
	return []float64{
		dot(r.m.RawRowView(0), v),
		dot(r.m.RawRowView(1), v),
		dot(r.m.RawRowView(2), v),
	}
}

// RotatePoint applies the rotation to a point on the sphere.
func (r Rotation) RotatePoint(p SpherePoint) SpherePoint {
	v := r.RotateVector(p.Vector())
	return NewSpherePointFromVector(v[0], v[1], v[2])
}

// Apply conjugates another rotation by this one, returning R * A * R^T.
// This re-expresses the rotation A in the frame carried along by R.
func (r Rotation) Apply(a Rotation) Rotation {
	return r.Mul(a).Div(r)
}
