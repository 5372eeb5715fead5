// Package catalog implements the tabular source catalog model: ordered
// rows of typed cells with an explicit missing state, a column schema with
// optional per-column units, schema union across catalogs, and the
// rejection bookkeeping carried by every merge pass.
package catalog

import (
	"sort"

	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/units"
)

// Well-known column names. Every catalog-bearing input provides at least
// Idx through Rejected; everything else is carried through opaquely.
const (
	ColIdx      = "idx"
	ColX        = "x_cen"
	ColY        = "y_cen"
	ColMajor    = "major_fwhm"
	ColMinor    = "minor_fwhm"
	ColPA       = "position_angle"
	ColRejected = "rejected"
	ColIndex    = "_index"
	ColName     = "_name"
)

// Column is one schema entry: a name and an optional unit.
type Column struct {
	Name string
	Unit units.Unit
}

// Row is one source record. Absent keys and explicitly missing values both
// read as missing.
type Row map[string]Value

// Float returns the named cell as a float64.
func (r Row) Float(col string) (float64, bool) {
	return r[col].Float()
}

// Int returns the named cell as an int64.
func (r Row) Int(col string) (int64, bool) {
	return r[col].Int()
}

// Missing reports whether the named cell is absent.
func (r Row) Missing(col string) bool {
	return r[col].IsMissing()
}

// Rejected reports whether the row is flagged rejected.
func (r Row) Rejected() bool {
	b, ok := r[ColRejected].Bool()
	return ok && b
}

// Copy returns a deep copy of the row.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Catalog is an ordered sequence of source records sharing a column
// schema. The schema is kept sorted by column name.
type Catalog struct {
	name string
	cols []Column
	rows []Row
}

// New creates a catalog with the given schema. Duplicate column names fail
// with ErrSchema.
func New(cols ...Column) (*Catalog, error) {
	c := &Catalog{}
	for _, col := range cols {
		if c.HasColumn(col.Name) {
			return nil, errors.NewSchemaError(col.Name, "duplicate column")
		}
		c.cols = append(c.cols, col)
	}
	c.sortSchema()
	return c, nil
}

// Name returns the catalog's display name, used in merge error reporting.
func (c *Catalog) Name() string { return c.name }

// SetName sets the catalog's display name.
func (c *Catalog) SetName(name string) { c.name = name }

// Len returns the number of rows.
func (c *Catalog) Len() int { return len(c.rows) }

// Columns returns a copy of the schema, sorted by column name.
func (c *Catalog) Columns() []Column {
	out := make([]Column, len(c.cols))
	copy(out, c.cols)
	return out
}

// HasColumn reports whether the schema contains the named column.
func (c *Catalog) HasColumn(name string) bool {
	for _, col := range c.cols {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Unit returns the unit associated with the named column, or units.None.
func (c *Catalog) Unit(name string) units.Unit {
	for _, col := range c.cols {
		if col.Name == name {
			return col.Unit
		}
	}
	return units.None
}

// AddRow appends a row. Cells under column names the schema does not know
// yet extend the schema with unitless columns.
func (c *Catalog) AddRow(r Row) {
	for name := range r {
		if !c.HasColumn(name) {
			c.cols = append(c.cols, Column{Name: name})
		}
	}
	c.sortSchema()
	c.rows = append(c.rows, r)
}

// Row returns the i'th row. The row is live: mutations are visible in the
// catalog.
func (c *Catalog) Row(i int) Row { return c.rows[i] }

// Rows returns the live row slice.
func (c *Catalog) Rows() []Row { return c.rows }

// Copy returns a deep copy of the catalog.
func (c *Catalog) Copy() *Catalog {
	out := &Catalog{name: c.name, cols: make([]Column, len(c.cols))}
	copy(out.cols, c.cols)
	out.rows = make([]Row, len(c.rows))
	for i, r := range c.rows {
		out.rows[i] = r.Copy()
	}
	return out
}

// FindRow returns the first row with the given idx value.
func (c *Catalog) FindRow(idx int64) (Row, error) {
	for _, r := range c.rows {
		if got, ok := r.Int(ColIdx); ok && got == idx {
			return r, nil
		}
	}
	return nil, errors.NewNotFoundError("row with idx", itoa(idx))
}

// Reject flags the rows with the given idx values as rejected. Rejected
// rows are never consumed as match candidates and pass through merges
// unchanged.
func (c *Catalog) Reject(ids ...int64) error {
	return c.setRejected(1, ids)
}

// Accept clears the rejected flag on the rows with the given idx values.
func (c *Catalog) Accept(ids ...int64) error {
	return c.setRejected(0, ids)
}

func (c *Catalog) setRejected(flag int64, ids []int64) error {
	for _, idx := range ids {
		r, err := c.FindRow(idx)
		if err != nil {
			return err
		}
		r[ColRejected] = Int(flag)
	}
	return nil
}

// MaskedIndices returns the positions of rows that contain one or more
// missing entries under the current schema.
func (c *Catalog) MaskedIndices() []int {
	var out []int
	for i, r := range c.rows {
		for _, col := range c.cols {
			if r.Missing(col.Name) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// Reindex reassigns the _index column contiguously over the current rows.
func (c *Catalog) Reindex() {
	if !c.HasColumn(ColIndex) {
		c.cols = append(c.cols, Column{Name: ColIndex})
		c.sortSchema()
	}
	for i, r := range c.rows {
		r[ColIndex] = Int(int64(i))
	}
}

func (c *Catalog) sortSchema() {
	sort.Slice(c.cols, func(i, j int) bool { return c.cols[i].Name < c.cols[j].Name })
}

// UnionSchema merges two schemas into one, sorted by column name. Columns
// sharing a name must carry equivalent units (or at most one unit), or the
// union fails with ErrSchema.
func UnionSchema(a, b []Column) ([]Column, error) {
	byName := make(map[string]Column, len(a)+len(b))
	for _, col := range a {
		byName[col.Name] = col
	}
	for _, col := range b {
		prev, ok := byName[col.Name]
		if !ok {
			byName[col.Name] = col
			continue
		}
		switch {
		case prev.Unit.IsZero():
			byName[col.Name] = col
		case col.Unit.IsZero() || prev.Unit.Equivalent(col.Unit):
			// keep prev
		default:
			return nil, errors.NewSchemaError(col.Name,
				"column defined with non-equivalent units "+prev.Unit.String()+" and "+col.Unit.String())
		}
	}

	out := make([]Column, 0, len(byName))
	for _, col := range byName {
		out = append(out, col)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Vstack stacks two catalogs into one working table under their unioned
// schema. Rows lacking a column of the union read as missing there. Values
// under a column whose source unit differs from the unioned unit are
// converted, so labels and stored values never drift apart.
func Vstack(a, b *Catalog) (*Catalog, error) {
	cols, err := UnionSchema(a.cols, b.cols)
	if err != nil {
		return nil, err
	}
	out := &Catalog{cols: cols}
	out.rows = make([]Row, 0, len(a.rows)+len(b.rows))
	for _, src := range []*Catalog{a, b} {
		factors := unitFactors(src.cols, cols)
		for _, r := range src.rows {
			out.rows = append(out.rows, convertRow(r, factors))
		}
	}
	return out, nil
}

// unitFactors maps column names to the multiplier taking a source
// catalog's declared unit into the unioned schema's unit. Columns already
// in the union's unit, or unitless on either side, are absent from the map.
func unitFactors(src, union []Column) map[string]float64 {
	byName := make(map[string]units.Unit, len(union))
	for _, col := range union {
		byName[col.Name] = col.Unit
	}
	var out map[string]float64
	for _, col := range src {
		dst, ok := byName[col.Name]
		if !ok || col.Unit.IsZero() || dst.IsZero() || col.Unit == dst {
			continue
		}
		q, err := units.Quantity{Value: 1, Unit: col.Unit}.To(dst)
		if err != nil {
			// UnionSchema already rejected non-equivalent units.
			continue
		}
		if out == nil {
			out = make(map[string]float64)
		}
		out[col.Name] = q.Value
	}
	return out
}

func convertRow(r Row, factors map[string]float64) Row {
	out := r.Copy()
	for name, factor := range factors {
		if f, ok := out[name].Float(); ok {
			out[name] = Float(f * factor)
		}
	}
	return out
}

func itoa(v int64) string {
	return Int(v).String()
}
