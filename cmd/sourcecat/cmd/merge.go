package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/astrokit/sourcecat"
	"github.com/astrokit/sourcecat/pkg/catalog"
	"github.com/astrokit/sourcecat/pkg/logging"
	"github.com/astrokit/sourcecat/pkg/units"
)

var (
	mergeOutput    string
	mergeThreshold float64
)

var mergeCmd = &cobra.Command{
	Use:   "merge <catalog.yaml> <catalog.yaml> [catalog.yaml...]",
	Short: "Cross-match catalogs into one consolidated catalog",
	Long: `Merge folds the given catalogs pairwise, left to right, consuming for
each source the nearest still-active neighbor within the match threshold.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.yaml", "output catalog file")
	mergeCmd.Flags().Float64VarP(&mergeThreshold, "threshold", "t", 0.036, "match threshold in arcseconds")

	if err := viper.BindPFlag("threshold", mergeCmd.Flags().Lookup("threshold")); err != nil {
		panic(err)
	}
}

func runMerge(cmd *cobra.Command, args []string) error {
	cats := make([]*catalog.Catalog, 0, len(args))
	for _, path := range args {
		c, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		cats = append(cats, c)
	}

	result, err := sourcecat.Match(cats,
		sourcecat.WithThreshold(units.Arcsec(viper.GetFloat64("threshold"))),
		sourcecat.WithVerbose(viper.GetBool("verbose")),
	)
	if err != nil {
		return err
	}

	if err := catalog.SaveFile(mergeOutput, result.Catalog); err != nil {
		return err
	}

	logging.Info().
		Int("rows", result.Catalog.Len()).
		Str("output", mergeOutput).
		Msg("Saved merged catalog")
	fmt.Fprintf(cmd.OutOrStdout(), "Merged %d catalogs into %s (%d rows)\n",
		len(cats), mergeOutput, result.Catalog.Len())
	return nil
}
