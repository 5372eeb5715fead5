// Package sourcecat consolidates point/ellipse-shaped detections extracted
// independently from multiple observations into one merged source catalog,
// resolving duplicate detections of the same physical source across inputs.
//
// Matching folds the inputs pairwise, left to right. Within each pair the
// matcher greedily consumes the nearest still-active neighbor of every row
// under the spatial threshold, averages the matched centers, and replaces
// the two footprint ellipses with their smallest enclosing ellipse.
package sourcecat

import (
	"math"

	"github.com/astrokit/sourcecat/pkg/catalog"
	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/match"
	"github.com/astrokit/sourcecat/pkg/units"
)

// MasterCatalog is the result of a match: the merged table plus references
// to the last-folded pair of inputs. Provenance of earlier catalogs in a
// multi-way fold is not retained.
type MasterCatalog struct {
	// First and Second are the inputs of the final fold iteration.
	First  *catalog.Catalog
	Second *catalog.Catalog

	// Catalog is the consolidated result.
	Catalog *catalog.Catalog
}

// Match cross-matches any number of catalogs into one consolidated catalog.
// At least two inputs are required.
//
// Any unit inconsistency or shape-union convergence failure aborts the
// whole match with no partial result.
func Match(cats []*catalog.Catalog, opts ...Option) (*MasterCatalog, error) {
	if len(cats) < 2 {
		return nil, errors.ErrInvalidInput
	}

	c := defaultConfig()
	if err := c.options(opts...); err != nil {
		return nil, err
	}

	matcher, err := match.New(c.threshold, c.logger())
	if err != nil {
		return nil, err
	}

	result := &MasterCatalog{}
	current := cats[0]
	for k := 1; k < len(cats); k++ {
		merged, err := matcher.Pair(current, cats[k])
		if err != nil {
			return nil, errors.NewMergeError(current.Name(), cats[k].Name(), err)
		}
		result.First = current
		result.Second = cats[k]
		result.Catalog = merged
		current = merged
	}
	return result, nil
}

// SpecIndex extrapolates a flux density from one frequency to another given
// a spectral index: f2 = f1 * (nu2/nu1)^alpha. Frequencies are validated
// into hertz; the result keeps f1's unit.
func SpecIndex(nu1, nu2, f1 units.Quantity, alpha float64) (units.Quantity, error) {
	n1, err := units.Guard(nu1, units.Hertz, "frequency nu1")
	if err != nil {
		return units.Quantity{}, err
	}
	n2, err := units.Guard(nu2, units.Hertz, "frequency nu2")
	if err != nil {
		return units.Quantity{}, err
	}
	return units.Quantity{
		Value: f1.Value * math.Pow(n2.Value/n1.Value, alpha),
		Unit:  f1.Unit,
	}, nil
}
