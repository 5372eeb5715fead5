package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrokit/sourcecat/pkg/catalog"
)

var (
	exportOutput      string
	exportSkipRejects bool
)

var exportCmd = &cobra.Command{
	Use:   "export <catalog.yaml>",
	Short: "Export a catalog as a DS9 region file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "catalog.reg", "output region file")
	exportCmd.Flags().BoolVar(&exportSkipRejects, "skip-rejects", true, "omit rejected sources")
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}

	if err := catalog.SaveRegions(exportOutput, c, exportSkipRejects); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", exportOutput)
	return nil
}
