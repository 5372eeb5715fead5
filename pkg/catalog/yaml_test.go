package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/sourcecat/pkg/catalog"
	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/units"
)

const sampleYAML = `
name: band6
columns:
  - name: idx
  - name: x_cen
    unit: deg
  - name: y_cen
    unit: deg
  - name: major_fwhm
    unit: deg
  - name: minor_fwhm
    unit: deg
  - name: position_angle
    unit: deg
  - name: rejected
  - name: band6_detected
rows:
  - idx: 1
    x_cen: 10.0
    y_cen: 20.0
    major_fwhm: 0.0005
    minor_fwhm: 0.0003
    position_angle: 10.0
    rejected: 0
    band6_detected: 1
  - idx: 2
    x_cen: 10.5
    y_cen: 20.5
    rejected: 0
`

func TestLoad(t *testing.T) {
	c, err := catalog.Load([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "band6", c.Name())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, units.Degree, c.Unit(catalog.ColX))
	assert.Equal(t, units.None, c.Unit(catalog.ColRejected))

	x, ok := c.Row(0).Float(catalog.ColX)
	assert.True(t, ok)
	assert.Equal(t, 10.0, x)

	// The second row never had ellipse parameters; they read as missing.
	assert.True(t, c.Row(1).Missing(catalog.ColMajor))
}

func TestLoadDuplicateColumn(t *testing.T) {
	doc := `
columns:
  - name: idx
  - name: idx
rows: []
`
	_, err := catalog.Load([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsSchema(err))
}

func TestLoadUnknownUnit(t *testing.T) {
	doc := `
columns:
  - name: x_cen
    unit: parsecs
rows: []
`
	_, err := catalog.Load([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsSchema(err))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig, err := catalog.Load([]byte(sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "band6.yaml")
	require.NoError(t, catalog.SaveFile(path, orig))

	back, err := catalog.LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, orig.Len(), back.Len())
	assert.Equal(t, orig.Columns(), back.Columns())
	for i := 0; i < orig.Len(); i++ {
		for _, col := range orig.Columns() {
			av := orig.Row(i)[col.Name]
			bv := back.Row(i)[col.Name]
			// Numeric kinds may round-trip between int and float
			// representations; compare by value.
			if af, ok := av.Float(); ok {
				bf, ok := bv.Float()
				require.True(t, ok, "row %d column %s", i, col.Name)
				assert.Equal(t, af, bf, "row %d column %s", i, col.Name)
				continue
			}
			assert.True(t, av.Equal(bv), "row %d column %s", i, col.Name)
		}
	}
}
