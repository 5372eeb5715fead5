package sourcecat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/sourcecat"
	"github.com/astrokit/sourcecat/pkg/catalog"
	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/logging"
	"github.com/astrokit/sourcecat/pkg/units"
)

func bandCatalog(t *testing.T, name string, positions ...[2]float64) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Column{Name: catalog.ColIdx},
		catalog.Column{Name: catalog.ColX, Unit: units.Degree},
		catalog.Column{Name: catalog.ColY, Unit: units.Degree},
		catalog.Column{Name: catalog.ColMajor, Unit: units.Degree},
		catalog.Column{Name: catalog.ColMinor, Unit: units.Degree},
		catalog.Column{Name: catalog.ColPA, Unit: units.Degree},
		catalog.Column{Name: catalog.ColRejected},
	)
	require.NoError(t, err)
	c.SetName(name)
	for i, p := range positions {
		c.AddRow(catalog.Row{
			catalog.ColIdx:      catalog.Int(int64(i + 1)),
			catalog.ColX:        catalog.Float(p[0]),
			catalog.ColY:        catalog.Float(p[1]),
			catalog.ColMajor:    catalog.Float(0.0005),
			catalog.ColMinor:    catalog.Float(0.0003),
			catalog.ColPA:       catalog.Float(10),
			catalog.ColRejected: catalog.Int(0),
		})
	}
	return c
}

func TestMatchFoldsPairwise(t *testing.T) {
	// Three bands, each seeing the same two sources: the fold collapses
	// every duplicate across all inputs.
	band3 := bandCatalog(t, "band3", [2]float64{10.0, 20.0}, [2]float64{10.5, 20.5})
	band6 := bandCatalog(t, "band6", [2]float64{10.0, 20.0}, [2]float64{10.5, 20.5})
	band7 := bandCatalog(t, "band7", [2]float64{10.0, 20.0}, [2]float64{10.5, 20.5})

	got, err := sourcecat.Match([]*catalog.Catalog{band3, band6, band7})
	require.NoError(t, err)
	require.NotNil(t, got.Catalog)
	assert.Equal(t, 2, got.Catalog.Len())
}

func TestMatchKeepsLastPair(t *testing.T) {
	band3 := bandCatalog(t, "band3", [2]float64{10.0, 20.0})
	band6 := bandCatalog(t, "band6", [2]float64{10.0, 20.0})
	band7 := bandCatalog(t, "band7", [2]float64{10.0, 20.0})

	got, err := sourcecat.Match([]*catalog.Catalog{band3, band6, band7})
	require.NoError(t, err)

	// First is the intermediate of the previous fold step, Second the last
	// raw input.
	assert.NotSame(t, band3, got.First)
	assert.Same(t, band7, got.Second)
	assert.Equal(t, 1, got.Catalog.Len())
}

func TestMatchRequiresTwoInputs(t *testing.T) {
	_, err := sourcecat.Match(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	one := bandCatalog(t, "solo", [2]float64{10.0, 20.0})
	_, err = sourcecat.Match([]*catalog.Catalog{one})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestMatchWithThreshold(t *testing.T) {
	// 0.01 arcsec apart: merged under the default 0.036 arcsec threshold,
	// kept separate under a tighter one.
	a := bandCatalog(t, "a", [2]float64{10.0, 20.0})
	b := bandCatalog(t, "b", [2]float64{10.0, 20.0 + 0.01/3600})

	got, err := sourcecat.Match([]*catalog.Catalog{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Catalog.Len())

	a = bandCatalog(t, "a", [2]float64{10.0, 20.0})
	b = bandCatalog(t, "b", [2]float64{10.0, 20.0 + 0.01/3600})
	got, err = sourcecat.Match([]*catalog.Catalog{a, b},
		sourcecat.WithThreshold(units.Arcsec(0.005)))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Catalog.Len())
}

func TestMatchWithLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	a := bandCatalog(t, "a", [2]float64{10.0, 20.0})
	b := bandCatalog(t, "b", [2]float64{10.0, 20.0})

	_, err := sourcecat.Match([]*catalog.Catalog{a, b},
		sourcecat.WithLogger(tl.Logger))
	require.NoError(t, err)
	assert.True(t, tl.Contains("Combining matches"))
	assert.True(t, tl.Contains("Merge pass complete"))
}

func TestMatchWrapsMergeFailure(t *testing.T) {
	mk := func(name string) *catalog.Catalog {
		c, err := catalog.New(
			catalog.Column{Name: catalog.ColIdx},
			catalog.Column{Name: catalog.ColX, Unit: units.Degree},
			catalog.Column{Name: catalog.ColY, Unit: units.Degree},
			catalog.Column{Name: catalog.ColMajor, Unit: units.Jansky},
			catalog.Column{Name: catalog.ColMinor, Unit: units.Degree},
			catalog.Column{Name: catalog.ColPA, Unit: units.Degree},
			catalog.Column{Name: catalog.ColRejected},
		)
		require.NoError(t, err)
		c.SetName(name)
		c.AddRow(catalog.Row{
			catalog.ColIdx:      catalog.Int(1),
			catalog.ColX:        catalog.Float(10),
			catalog.ColY:        catalog.Float(20),
			catalog.ColMajor:    catalog.Float(0.0005),
			catalog.ColMinor:    catalog.Float(0.0003),
			catalog.ColPA:       catalog.Float(10),
			catalog.ColRejected: catalog.Int(0),
		})
		return c
	}

	_, err := sourcecat.Match([]*catalog.Catalog{mk("band3"), mk("band6")})
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))

	var merr *errors.MergeError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "band3", merr.First)
	assert.Equal(t, "band6", merr.Second)
}

func TestSpecIndex(t *testing.T) {
	// A flat spectrum extrapolates unchanged.
	f, err := sourcecat.SpecIndex(
		units.Quantity{Value: 93, Unit: units.Gigahertz},
		units.Quantity{Value: 230, Unit: units.Gigahertz},
		units.Quantity{Value: 1.5, Unit: units.MilliJansky},
		0,
	)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f.Value)
	assert.Equal(t, units.MilliJansky, f.Unit)

	// alpha = 2 scales with the squared frequency ratio; mixed hertz units
	// on the two frequencies are normalized before the ratio.
	f, err = sourcecat.SpecIndex(
		units.Quantity{Value: 100, Unit: units.Gigahertz},
		units.Quantity{Value: 200000, Unit: units.Megahertz},
		units.Quantity{Value: 2, Unit: units.MilliJansky},
		2,
	)
	require.NoError(t, err)
	assert.InDelta(t, 8, f.Value, 1e-12)

	// A non-frequency input is rejected.
	_, err = sourcecat.SpecIndex(
		units.Quantity{Value: 1, Unit: units.Degree},
		units.Quantity{Value: 230, Unit: units.Gigahertz},
		units.Quantity{Value: 1.5, Unit: units.MilliJansky},
		-1,
	)
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))
}
