// Package match implements greedy spatial cross-matching of source
// catalogs: stacking two catalogs under their unioned schema, walking the
// active rows left to right, and folding each matched pair of detections
// into one consolidated row.
//
// The algorithm is intentionally greedy and order-dependent. A row already
// tested is never revisited, but a later row can still consume an earlier
// one that was not itself merged away. This is a design simplification,
// not a global optimum matcher, and its exact semantics are preserved for
// behavioral compatibility with results produced by earlier reductions.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog"

	"github.com/astrokit/sourcecat/pkg/catalog"
	"github.com/astrokit/sourcecat/pkg/ellipse"
	"github.com/astrokit/sourcecat/pkg/logging"
	"github.com/astrokit/sourcecat/pkg/units"
)

// maxCandidates caps how many of the closest-in-x candidates get a full
// distance evaluation per test row. A performance heuristic, not a true
// nearest-neighbor guarantee.
const maxCandidates = 10

// DefaultThreshold is the default spatial match threshold.
var DefaultThreshold = units.Arcsec(0.036)

// Matcher merges pairs of catalogs under a spatial distance threshold.
type Matcher struct {
	thresholdDeg float64
	logger       *zerolog.Logger
}

// New creates a Matcher. The threshold is validated into degrees; a
// unitless threshold is assumed to be in degrees with a warning.
func New(threshold units.Quantity, logger *zerolog.Logger) (*Matcher, error) {
	thr, err := units.Guard(threshold, units.Degree, "match threshold")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &logging.Nop
	}
	return &Matcher{thresholdDeg: thr.Value, logger: logger}, nil
}

// candidate is one still-active row's offset from the test row.
type candidate struct {
	pos    int
	dx, dy float64
}

// Pair merges two catalogs into one. Rows within the threshold of an
// earlier active row are folded into it: centers averaged, ellipses
// replaced by their smallest enclosing ellipse, and missing fields filled
// from the consumed partner. Rejected rows pass through unchanged.
//
// A unit inconsistency or a convergence failure aborts the whole pass; no
// partial catalog is returned.
func (m *Matcher) Pair(a, b *catalog.Catalog) (*catalog.Catalog, error) {
	stack, err := catalog.Vstack(a, b)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{
		catalog.ColX, catalog.ColY,
		catalog.ColMajor, catalog.ColMinor, catalog.ColPA,
	} {
		if err := stack.GuardColumn(name, units.Degree); err != nil {
			return nil, err
		}
	}
	stack.Reindex()

	rows := stack.Rows()
	n := len(rows)
	removed := make([]bool, n)

	active := 0
	for _, r := range rows {
		if !r.Rejected() {
			active++
		}
	}
	m.logger.Info().
		Int("rows", active).
		Float64("threshold_deg", m.thresholdDeg).
		Msg("Combining matches")

	matches := 0
	for i := 0; i < n; i++ {
		if removed[i] || rows[i].Rejected() {
			continue
		}
		test := rows[i]
		tx, okX := test.Float(catalog.ColX)
		ty, okY := test.Float(catalog.ColY)
		if !okX || !okY {
			continue
		}

		// Candidate set: every other still-active row.
		cands := make([]candidate, 0, n)
		for j := 0; j < n; j++ {
			if j == i || removed[j] || rows[j].Rejected() {
				continue
			}
			cx, okX := rows[j].Float(catalog.ColX)
			cy, okY := rows[j].Float(catalog.ColY)
			if !okX || !okY {
				continue
			}
			cands = append(cands, candidate{
				pos: j,
				dx:  math.Abs(cx - tx),
				dy:  math.Abs(cy - ty),
			})
		}
		sort.SliceStable(cands, func(p, q int) bool { return cands[p].dx < cands[q].dx })

		limit := len(cands)
		if limit > maxCandidates {
			limit = maxCandidates
		}

		found := false
		best := -1
		bestDist := math.Inf(1)
		for _, c := range cands[:limit] {
			dist := planar.Distance(orb.Point{}, orb.Point{c.dx, c.dy})
			if dist <= m.thresholdDeg {
				found = true
			}
			if dist < bestDist {
				bestDist = dist
				best = c.pos
			}
		}
		if !found {
			continue
		}

		if err := m.merge(stack, test, rows[best]); err != nil {
			return nil, err
		}
		removed[best] = true
		matches++
		m.logger.Debug().
			Int("index", i).
			Int("match_index", best).
			Float64("distance_deg", bestDist).
			Msg("Merged matched sources")
	}

	out, err := catalog.New(stack.Columns()...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if !removed[i] {
			out.AddRow(rows[i])
		}
	}
	fillDetected(out)
	out.Reindex()

	m.logger.Info().
		Int("matches", matches).
		Int("rows", out.Len()).
		Msg("Merge pass complete")
	return out, nil
}

// merge folds the matched row into the test row in place: centers are
// averaged, ellipse parameters replaced with the smallest enclosing
// ellipse, and every field the test row lacks is copied from the match.
func (m *Matcher) merge(stack *catalog.Catalog, test, match catalog.Row) error {
	tx, _ := test.Float(catalog.ColX)
	ty, _ := test.Float(catalog.ColY)
	mx, _ := match.Float(catalog.ColX)
	my, _ := match.Float(catalog.ColY)

	union, err := ellipse.Union(rowEllipse(stack, test), rowEllipse(stack, match))
	if err != nil {
		return err
	}

	test[catalog.ColX] = catalog.Float((tx + mx) / 2)
	test[catalog.ColY] = catalog.Float((ty + my) / 2)
	test[catalog.ColMajor] = catalog.Float(union.Major.Value)
	test[catalog.ColMinor] = catalog.Float(union.Minor.Value)
	test[catalog.ColPA] = catalog.Float(union.PA.Value)

	// Fill from the match row's own keys: a cell written past the schema
	// must still transfer.
	for name, v := range match {
		if !v.IsMissing() && test.Missing(name) {
			test[name] = v
		}
	}
	return nil
}

// rowEllipse builds a row's footprint ellipse, carrying the column units
// so the union can validate them into degrees.
func rowEllipse(stack *catalog.Catalog, r catalog.Row) ellipse.Ellipse {
	major, _ := r.Float(catalog.ColMajor)
	minor, _ := r.Float(catalog.ColMinor)
	pa, _ := r.Float(catalog.ColPA)
	return ellipse.Ellipse{
		Major: units.Quantity{Value: major, Unit: stack.Unit(catalog.ColMajor)},
		Minor: units.Quantity{Value: minor, Unit: stack.Unit(catalog.ColMinor)},
		PA:    units.Quantity{Value: pa, Unit: stack.Unit(catalog.ColPA)},
	}
}

// fillDetected defaults missing entries of every "detected" flag column
// to 0: a source missing from a band's input was not detected there.
func fillDetected(c *catalog.Catalog) {
	for _, col := range c.Columns() {
		if !strings.Contains(col.Name, "detected") {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			row := c.Row(i)
			if row.Rejected() {
				continue
			}
			if row.Missing(col.Name) {
				row[col.Name] = catalog.Int(0)
			}
		}
	}
}
