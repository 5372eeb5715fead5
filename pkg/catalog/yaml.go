package catalog

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/units"
)

// document is the on-disk YAML shape of a catalog.
type document struct {
	Name    string           `yaml:"name,omitempty"`
	Columns []documentColumn `yaml:"columns"`
	Rows    []map[string]any `yaml:"rows"`
}

type documentColumn struct {
	Name string `yaml:"name"`
	Unit string `yaml:"unit,omitempty"`
}

// Load decodes a catalog from YAML. Column units are resolved by name;
// null or absent cells decode as missing.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return fromDocument(&doc, "")
}

// LoadFile decodes a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	c, err := fromDocument(&doc, path)
	if err != nil {
		return nil, err
	}
	if c.Name() == "" {
		c.SetName(path)
	}
	return c, nil
}

func fromDocument(doc *document, path string) (*Catalog, error) {
	cols := make([]Column, 0, len(doc.Columns))
	seen := make(map[string]bool, len(doc.Columns))
	for _, dc := range doc.Columns {
		if seen[dc.Name] {
			return nil, errors.NewSchemaError(dc.Name, "duplicate column")
		}
		seen[dc.Name] = true

		unit, err := units.Parse(dc.Unit)
		if err != nil {
			return nil, errors.NewSchemaError(dc.Name, "unknown unit "+dc.Unit)
		}
		cols = append(cols, Column{Name: dc.Name, Unit: unit})
	}

	c, err := New(cols...)
	if err != nil {
		return nil, err
	}
	c.SetName(doc.Name)

	for _, raw := range doc.Rows {
		row := make(Row, len(raw))
		for name, x := range raw {
			v, err := FromAny(x)
			if err != nil {
				return nil, errors.WrapParse("yaml", path, err)
			}
			if !v.IsMissing() {
				row[name] = v
			}
		}
		c.AddRow(row)
	}
	return c, nil
}

// Marshal encodes the catalog as YAML.
func Marshal(c *Catalog) ([]byte, error) {
	doc := document{Name: c.Name()}
	for _, col := range c.Columns() {
		doc.Columns = append(doc.Columns, documentColumn{Name: col.Name, Unit: col.Unit.String()})
	}
	for i := 0; i < c.Len(); i++ {
		raw := make(map[string]any)
		for name, v := range c.Row(i) {
			if !v.IsMissing() {
				raw[name] = v.ToAny()
			}
		}
		doc.Rows = append(doc.Rows, raw)
	}
	return yaml.Marshal(&doc)
}

// SaveFile encodes the catalog as YAML at the given path.
func SaveFile(path string, c *Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
