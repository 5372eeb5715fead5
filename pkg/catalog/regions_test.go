package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrokit/sourcecat/pkg/catalog"
)

func regionTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(geometryColumns()...)
	require.NoError(t, err)
	c.AddRow(catalog.Row{
		catalog.ColIdx:      catalog.Int(1),
		catalog.ColX:        catalog.Float(10),
		catalog.ColY:        catalog.Float(20),
		catalog.ColMajor:    catalog.Float(0.0005),
		catalog.ColMinor:    catalog.Float(0.0003),
		catalog.ColPA:       catalog.Float(10),
		catalog.ColRejected: catalog.Int(0),
	})
	c.AddRow(catalog.Row{
		catalog.ColIdx:      catalog.Int(2),
		catalog.ColX:        catalog.Float(11),
		catalog.ColY:        catalog.Float(21),
		catalog.ColMajor:    catalog.Float(0.0004),
		catalog.ColMinor:    catalog.Float(0.0002),
		catalog.ColPA:       catalog.Float(-30),
		catalog.ColRejected: catalog.Int(1),
		catalog.ColName:     catalog.Str("W51e2"),
	})
	return c
}

func TestWriteRegions(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, catalog.WriteRegions(&sb, regionTestCatalog(t), false))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "icrs", lines[0])
	assert.Equal(t, "ellipse(10, 20, 0.00025, 0.00015, 10) # text={1}", lines[1])
	assert.Equal(t, "ellipse(11, 21, 0.0002, 0.0001, -30) # text={W51e2}", lines[2])
}

func TestWriteRegionsSkipRejects(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, catalog.WriteRegions(&sb, regionTestCatalog(t), true))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, sb.String(), "W51e2")
}

func TestSaveRegionsExtensionCorrection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.txt")

	require.NoError(t, catalog.SaveRegions(path, regionTestCatalog(t), true))

	corrected := filepath.Join(dir, "sources.reg")
	data, err := os.ReadFile(corrected)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "icrs\n"))
}
