package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrokit/sourcecat/pkg/errors"
	"github.com/astrokit/sourcecat/pkg/logging"
)

// WriteRegions writes the catalog as a DS9 region file: an "icrs" header
// line, then one ellipse region per row. Region semi-axes are half the
// stored FWHM values. When skipRejects is set, rejected rows are omitted.
func WriteRegions(w io.Writer, c *Catalog, skipRejects bool) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("icrs\n"); err != nil {
		return err
	}

	for i := 0; i < c.Len(); i++ {
		row := c.Row(i)
		if skipRejects && row.Rejected() {
			continue
		}

		x, _ := row.Float(ColX)
		y, _ := row.Float(ColY)
		major, _ := row.Float(ColMajor)
		minor, _ := row.Float(ColMinor)
		pa, _ := row.Float(ColPA)

		line := fmt.Sprintf("ellipse(%g, %g, %g, %g, %g) # text={%s}\n",
			x, y, major/2, minor/2, pa, displayName(row))
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveRegions writes the catalog as a DS9 region file at the given path.
// A missing or unexpected file extension is self-corrected to ".reg" with
// a warning.
func SaveRegions(path string, c *Catalog, skipRejects bool) error {
	if !strings.HasSuffix(path, ".reg") {
		logging.Warn().
			Str("path", path).
			Msg("Invalid or missing file extension. Self-correcting.")
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".reg"
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := WriteRegions(f, c, skipRejects); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// displayName returns the text label for a row's region: the _name column
// when present, otherwise the idx number.
func displayName(r Row) string {
	if name, ok := r[ColName].Str(); ok {
		return name
	}
	return r[ColIdx].String()
}
