package catalog

import (
	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/logging"
	"github.com/astrokit/sourcecat/pkg/units"
)

// GuardColumn validates the named column against a required unit and
// rewrites its stored values into that unit.
//
// A column with no declared unit is assumed to already be in the required
// unit; a warning is emitted and the column is relabelled without touching
// values. A column with an equivalent unit has every numeric cell converted
// and is relabelled. A non-equivalent unit fails with ErrUnitMismatch.
// A column the schema does not contain is left alone; operations that need
// it handle absence themselves.
func (c *Catalog) GuardColumn(name string, unit units.Unit) error {
	if unit.IsZero() {
		return errors.NewUnitError(name, c.Unit(name).String(), "")
	}
	for i := range c.cols {
		col := &c.cols[i]
		if col.Name != name {
			continue
		}
		switch {
		case col.Unit == unit:
			return nil
		case col.Unit.IsZero():
			logging.Warn().
				Str("context", name).
				Str("unit", unit.String()).
				Msg("Assuming quantity unit")
			col.Unit = unit
			return nil
		case !col.Unit.Equivalent(unit):
			return errors.NewUnitError(name, col.Unit.String(), unit.String())
		}

		factor, err := units.Quantity{Value: 1, Unit: col.Unit}.To(unit)
		if err != nil {
			return err
		}
		for _, r := range c.rows {
			if f, ok := r[name].Float(); ok {
				r[name] = Float(f * factor.Value)
			}
		}
		col.Unit = unit
		return nil
	}
	return nil
}
