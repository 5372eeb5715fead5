package ellipse

import (
	"math"

	"github.com/astrokit/sourcecat/pkg/errors"
)

// Tolerances is the descending tolerance sequence for enclosing-ellipse
// solves, tried loosest first. The loosest attempt that still produces a
// verified enclosing ellipse is accepted; exhausting the sequence fails
// with ErrConvergence.
var Tolerances = []float64{1e-4, 5e-5, 1e-5, 1e-6, 1e-7}

// containSlack is the relative slack for the shortcut containment test
// between two input ellipses.
const containSlack = 1e-9

// Set is a collection of ellipses sharing the degree unit, the working
// representation for enclosing-shape solves.
type Set struct {
	ellipses []Ellipse
}

// NewSet validates each ellipse's parameters into degrees and collects
// them. Any unit inconsistency fails the whole set.
func NewSet(es ...Ellipse) (*Set, error) {
	s := &Set{ellipses: make([]Ellipse, 0, len(es))}
	for _, e := range es {
		g, err := e.guarded()
		if err != nil {
			return nil, err
		}
		s.ellipses = append(s.ellipses, g)
	}
	return s, nil
}

// Len returns the number of ellipses in the set.
func (s *Set) Len() int { return len(s.ellipses) }

// Common computes the smallest ellipse enclosing every ellipse in the set.
//
// Each attempt runs the numerical solver at one tolerance from the
// back-off sequence and verifies the result against the sampled boundaries
// of all inputs; a failed attempt triggers a retry at the next, stricter,
// tolerance. Output parameters are in degrees.
func (s *Set) Common() (Ellipse, error) {
	var pts []point
	for _, e := range s.ellipses {
		pts = append(pts, e.boundary(samplesPerEllipse)...)
	}

	var lastErr error
	for _, tol := range Tolerances {
		semiMajor, semiMinor, pa, err := minVolEllipse(pts, tol)
		if err != nil {
			lastErr = err
			continue
		}

		// The solver's stopping criterion admits boundary points up to
		// 1 + 2*tol in the quadratic form, so the raw result can undercut
		// an input's extent by a tolerance-sized margin. Inflating both
		// axes by the matching factor brings every input point inside.
		inflate := math.Sqrt(1 + 2*tol)
		out := New(2*semiMajor*inflate, 2*semiMinor*inflate, pa)
		if !encloses(out, pts) {
			lastErr = errors.New("result does not enclose all inputs")
			continue
		}
		return out, nil
	}
	return Ellipse{}, errors.NewConvergenceError(Tolerances, lastErr)
}

// Union computes the smallest ellipse enclosing both inputs, in degrees.
// When one input already encloses the other it is returned unchanged.
func Union(a, b Ellipse) (Ellipse, error) {
	ga, err := a.guarded()
	if err != nil {
		return Ellipse{}, err
	}
	gb, err := b.guarded()
	if err != nil {
		return Ellipse{}, err
	}

	if ga.Contains(gb, containSlack) {
		return ga, nil
	}
	if gb.Contains(ga, containSlack) {
		return gb, nil
	}

	s := &Set{ellipses: []Ellipse{ga, gb}}
	return s.Common()
}

// encloses checks every point against the candidate's quadratic form.
// The candidate is already inflated past the solver's dual gap, so only
// rounding slack is allowed here.
func encloses(e Ellipse, pts []point) bool {
	m11, m12, m22, ok := e.quadForm()
	if !ok {
		return false
	}
	for _, p := range pts {
		v := m11*p.x*p.x + 2*m12*p.x*p.y + m22*p.y*p.y
		if v > 1+containSlack {
			return false
		}
	}
	return true
}
