package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/units"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want units.Unit
	}{
		{"deg", units.Degree},
		{"arcmin", units.Arcminute},
		{"arcsec", units.Arcsecond},
		{"mas", units.Mas},
		{"rad", units.Radian},
		{"pix", units.Pixel},
		{"Jy", units.Jansky},
		{"mJy", units.MilliJansky},
		{"GHz", units.Gigahertz},
		{"", units.None},
	}
	for _, tt := range tests {
		got, err := units.Parse(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := units.Parse("furlong")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestConvert(t *testing.T) {
	q, err := units.Arcsec(0.036).To(units.Degree)
	require.NoError(t, err)
	assert.InDelta(t, 1e-5, q.Value, 1e-20)
	assert.Equal(t, units.Degree, q.Unit)

	q, err = units.Deg(1).To(units.Arcsecond)
	require.NoError(t, err)
	assert.InDelta(t, 3600, q.Value, 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	orig := units.Deg(12.3456789)
	there, err := orig.To(units.Mas)
	require.NoError(t, err)
	back, err := there.To(units.Degree)
	require.NoError(t, err)
	assert.InDelta(t, orig.Value, back.Value, 1e-12)
}

func TestConvertAcrossDimensions(t *testing.T) {
	_, err := units.Deg(1).To(units.Jansky)
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))

	_, err = units.Pix(3).To(units.Degree)
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))
}

func TestConvertUnitless(t *testing.T) {
	// Plain conversion of a bare scalar is an error; only Guard assumes.
	_, err := units.Scalar(5).To(units.Degree)
	require.Error(t, err)
	assert.True(t, errors.IsUnitMismatch(err))
}

func TestEquivalent(t *testing.T) {
	assert.True(t, units.Degree.Equivalent(units.Arcsecond))
	assert.True(t, units.Jansky.Equivalent(units.MicroJansky))
	assert.False(t, units.Degree.Equivalent(units.Pixel))
	assert.False(t, units.None.Equivalent(units.Degree))
	assert.False(t, units.None.Equivalent(units.None))
}
