// Package units defines physical units and quantities for catalog columns
// and geometric parameters, plus the consistency guard every geometric
// operation runs its inputs through before comparing them.
//
// A Unit is a named scale within a physical dimension. The underlying
// representation of a Quantity is simply a float64 and its Unit; conversions
// between equivalent units only incur a multiplication.
package units

import (
	"math"

	"github.com/astrokit/sourcecat/pkg/errors"
)

// Dimension identifies a physical dimension. Units are convertible only
// within the same dimension.
type Dimension int

// Supported dimensions.
const (
	DimensionNone Dimension = iota
	DimensionAngle
	DimensionPixel
	DimensionFlux
	DimensionFrequency
)

// Unit is a named scale within a physical dimension. The zero Unit means
// "no unit": a bare scalar.
type Unit struct {
	name  string
	dim   Dimension
	scale float64 // multiplier to the dimension's base unit
}

// Angular units. The base unit is the degree, matching catalog storage.
var (
	Degree    = Unit{"deg", DimensionAngle, 1}
	Arcminute = Unit{"arcmin", DimensionAngle, 1.0 / 60}
	Arcsecond = Unit{"arcsec", DimensionAngle, 1.0 / 3600}
	Mas       = Unit{"mas", DimensionAngle, 1.0 / 3.6e6}
	Radian    = Unit{"rad", DimensionAngle, 180 / math.Pi}
)

// Pixel is the unit of image-plane coordinates.
var Pixel = Unit{"pix", DimensionPixel, 1}

// Flux density units, carried through opaquely on photometry columns.
var (
	Jansky      = Unit{"Jy", DimensionFlux, 1}
	MilliJansky = Unit{"mJy", DimensionFlux, 1e-3}
	MicroJansky = Unit{"uJy", DimensionFlux, 1e-6}
)

// Frequency units, used by the spectral index helper.
var (
	Hertz     = Unit{"Hz", DimensionFrequency, 1}
	Megahertz = Unit{"MHz", DimensionFrequency, 1e6}
	Gigahertz = Unit{"GHz", DimensionFrequency, 1e9}
)

// None is the zero Unit: a bare, unitless scalar.
var None = Unit{}

// named lists every parseable unit.
var named = []Unit{
	Degree, Arcminute, Arcsecond, Mas, Radian,
	Pixel,
	Jansky, MilliJansky, MicroJansky,
	Hertz, Megahertz, Gigahertz,
}

// Parse resolves a unit by its name, e.g. "deg" or "arcsec". An empty name
// resolves to None.
func Parse(name string) (Unit, error) {
	if name == "" {
		return None, nil
	}
	for _, u := range named {
		if u.name == name {
			return u, nil
		}
	}
	return None, errors.NewNotFoundError("unit", name)
}

// String returns the unit's name, or the empty string for None.
func (u Unit) String() string { return u.name }

// IsZero reports whether the unit is None.
func (u Unit) IsZero() bool { return u == None }

// Dimension returns the unit's physical dimension.
func (u Unit) Dimension() Dimension { return u.dim }

// Equivalent reports whether values in u can be converted to values in o.
func (u Unit) Equivalent(o Unit) bool {
	return !u.IsZero() && !o.IsZero() && u.dim == o.dim
}

// Quantity is a float64 value with an optional unit. The zero-valued Unit
// marks a bare scalar, distinct from any united quantity.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Scalar returns a unitless quantity.
func Scalar(v float64) Quantity { return Quantity{Value: v} }

// Deg returns a quantity in degrees.
func Deg(v float64) Quantity { return Quantity{v, Degree} }

// Arcsec returns a quantity in arcseconds.
func Arcsec(v float64) Quantity { return Quantity{v, Arcsecond} }

// Pix returns a quantity in pixels.
func Pix(v float64) Quantity { return Quantity{v, Pixel} }

// Unitless reports whether the quantity carries no unit.
func (q Quantity) Unitless() bool { return q.Unit.IsZero() }

// To converts the quantity to the given unit. Converting a unitless
// quantity, or across dimensions, fails with ErrUnitMismatch; use Guard for
// the assume-and-warn behavior on unitless values.
func (q Quantity) To(u Unit) (Quantity, error) {
	if !q.Unit.Equivalent(u) {
		return Quantity{}, errors.NewUnitError("", q.Unit.String(), u.String())
	}
	return Quantity{q.Value * q.Unit.scale / u.scale, u}, nil
}

// SkyCoord is a position on the sky, stored in degrees.
type SkyCoord struct {
	RA  float64 // degrees
	Dec float64 // degrees
}

// PixCoord is a position in an image plane, stored in pixels.
type PixCoord struct {
	X float64
	Y float64
}
