package units

import (
	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/logging"
)

// Guard validates a quantity against a required unit and returns the value
// expressed in that unit.
//
// A unitless quantity is assumed to already be in the required unit; a
// warning is emitted and the value is returned relabelled. A quantity with
// an equivalent unit is converted. Anything else fails with ErrUnitMismatch.
// The context string names what is being validated and appears in warnings
// and errors.
func Guard(q Quantity, unit Unit, context string) (Quantity, error) {
	if unit.IsZero() {
		return Quantity{}, errors.NewUnitError(context, q.Unit.String(), "")
	}
	if q.Unitless() {
		warnAssumed(context, unit)
		return Quantity{q.Value, unit}, nil
	}
	if !q.Unit.Equivalent(unit) {
		return Quantity{}, errors.NewUnitError(context, q.Unit.String(), unit.String())
	}
	return q.To(unit)
}

// GuardSky validates a sky coordinate against a required unit. Sky
// coordinates are inherently angular, so any angular unit passes and the
// coordinate is returned untouched; anything else fails with
// ErrUnitMismatch.
func GuardSky(c SkyCoord, unit Unit, context string) (SkyCoord, error) {
	if unit.Dimension() != DimensionAngle {
		return SkyCoord{}, errors.NewUnitError(context, Degree.String(), unit.String())
	}
	return c, nil
}

// GuardPix validates a pixel coordinate against a required unit. Only pixel
// units pass.
func GuardPix(p PixCoord, unit Unit, context string) (PixCoord, error) {
	if unit.Dimension() != DimensionPixel {
		return PixCoord{}, errors.NewUnitError(context, Pixel.String(), unit.String())
	}
	return p, nil
}

// GuardSeq validates a sequence of quantities against a required unit.
//
// If every element is unitless, the required unit is assumed for all of them
// with a single warning. If every element carries a unit, all units must be
// pairwise equivalent and convertible to the required unit, or the guard
// fails with ErrUnitMismatch. A sequence mixing united and unitless elements
// fails with ErrMixedUnits.
func GuardSeq(qs []Quantity, unit Unit, context string) ([]Quantity, error) {
	if unit.IsZero() {
		return nil, errors.NewUnitError(context, "", "")
	}

	united := 0
	for _, q := range qs {
		if !q.Unitless() {
			united++
		}
	}

	switch {
	case united == 0:
		warnAssumed(context, unit)
		out := make([]Quantity, len(qs))
		for i, q := range qs {
			out[i] = Quantity{q.Value, unit}
		}
		return out, nil

	case united < len(qs):
		return nil, errors.NewMixedUnitsError(context)
	}

	for i, a := range qs {
		for _, b := range qs[i+1:] {
			if !a.Unit.Equivalent(b.Unit) {
				return nil, errors.NewUnitError(context, b.Unit.String(), a.Unit.String())
			}
		}
	}

	out := make([]Quantity, len(qs))
	for i, q := range qs {
		conv, err := Guard(q, unit, context)
		if err != nil {
			return nil, err
		}
		out[i] = conv
	}
	return out, nil
}

func warnAssumed(context string, unit Unit) {
	logging.Warn().
		Str("context", context).
		Str("unit", unit.String()).
		Msg("Assuming quantity unit")
}
