// Package ellipse implements center-independent ellipse geometry for
// source footprints: validation of (major, minor, position angle) triples
// into a common angular unit, boundary sampling, containment tests, and
// the smallest ellipse enclosing a set of ellipses.
//
// Axis lengths are full widths (FWHM), matching catalog storage; position
// angles are measured counterclockwise from the +x axis.
package ellipse

import (
	"fmt"
	"math"

	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/units"
)

// samplesPerEllipse is the boundary sampling density used for both the
// enclosing-ellipse solve and containment checks.
const samplesPerEllipse = 64

// Ellipse is a center-independent ellipse: full axis widths and the
// position angle of the major axis.
type Ellipse struct {
	Major units.Quantity
	Minor units.Quantity
	PA    units.Quantity
}

// New builds an ellipse from plain degree values.
func New(majorDeg, minorDeg, paDeg float64) Ellipse {
	return Ellipse{
		Major: units.Deg(majorDeg),
		Minor: units.Deg(minorDeg),
		PA:    units.Deg(paDeg),
	}
}

// guarded returns the ellipse with all three parameters validated into
// degrees, enforcing major >= minor >= 0.
func (e Ellipse) guarded() (Ellipse, error) {
	major, err := units.Guard(e.Major, units.Degree, "major axis")
	if err != nil {
		return Ellipse{}, err
	}
	minor, err := units.Guard(e.Minor, units.Degree, "minor axis")
	if err != nil {
		return Ellipse{}, err
	}
	pa, err := units.Guard(e.PA, units.Degree, "position angle")
	if err != nil {
		return Ellipse{}, err
	}
	if minor.Value < 0 || major.Value < minor.Value {
		return Ellipse{}, fmt.Errorf("axis ordering major >= minor >= 0 violated: %w", errors.ErrInvalidInput)
	}
	return Ellipse{Major: major, Minor: minor, PA: pa}, nil
}

// boundary returns n points sampled on the ellipse boundary, centered at
// the origin. Values must already be guarded into degrees.
func (e Ellipse) boundary(n int) []point {
	a := e.Major.Value / 2
	b := e.Minor.Value / 2
	theta := e.PA.Value * math.Pi / 180
	sinT, cosT := math.Sincos(theta)

	pts := make([]point, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(t)
		pts[i] = point{
			x: a*cos*cosT - b*sin*sinT,
			y: a*cos*sinT + b*sin*cosT,
		}
	}
	return pts
}

// quadForm returns the symmetric matrix M of the ellipse's quadratic form:
// a point p is inside or on the boundary iff p'Mp <= 1. Fails for a
// degenerate (zero-axis) ellipse.
func (e Ellipse) quadForm() (m11, m12, m22 float64, ok bool) {
	a := e.Major.Value / 2
	b := e.Minor.Value / 2
	if a == 0 || b == 0 {
		return 0, 0, 0, false
	}
	theta := e.PA.Value * math.Pi / 180
	sinT, cosT := math.Sincos(theta)
	ia2 := 1 / (a * a)
	ib2 := 1 / (b * b)

	m11 = cosT*cosT*ia2 + sinT*sinT*ib2
	m22 = sinT*sinT*ia2 + cosT*cosT*ib2
	m12 = cosT * sinT * (ia2 - ib2)
	return m11, m12, m22, true
}

// Contains reports whether every sampled boundary point of o lies within
// (or on) e, within the given relative tolerance.
func (e Ellipse) Contains(o Ellipse, tol float64) bool {
	m11, m12, m22, ok := e.quadForm()
	if !ok {
		return false
	}
	for _, p := range o.boundary(samplesPerEllipse) {
		v := m11*p.x*p.x + 2*m12*p.x*p.y + m22*p.y*p.y
		if v > 1+tol {
			return false
		}
	}
	return true
}

type point struct {
	x, y float64
}
