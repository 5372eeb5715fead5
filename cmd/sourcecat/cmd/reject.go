package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/astrokit/sourcecat/pkg/catalog"
)

var (
	rejectOutput string
	acceptOutput string
)

var rejectCmd = &cobra.Command{
	Use:   "reject <catalog.yaml> <idx> [idx...]",
	Short: "Flag sources as rejected by idx",
	Long: `Reject flags the given sources as rejected. Rejected sources are never
consumed as match candidates and pass through merges unchanged.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReject,
}

var acceptCmd = &cobra.Command{
	Use:   "accept <catalog.yaml> <idx> [idx...]",
	Short: "Clear the rejected flag on sources by idx",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAccept,
}

func init() {
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(acceptCmd)

	rejectCmd.Flags().StringVarP(&rejectOutput, "output", "o", "", "output catalog file (default: in place)")
	acceptCmd.Flags().StringVarP(&acceptOutput, "output", "o", "", "output catalog file (default: in place)")
}

func runReject(cmd *cobra.Command, args []string) error {
	return setRejected(cmd, args, rejectOutput, true)
}

func runAccept(cmd *cobra.Command, args []string) error {
	return setRejected(cmd, args, acceptOutput, false)
}

func setRejected(cmd *cobra.Command, args []string, output string, rejected bool) error {
	c, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		idx, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid idx %q: %w", arg, err)
		}
		ids = append(ids, idx)
	}

	if rejected {
		err = c.Reject(ids...)
	} else {
		err = c.Accept(ids...)
	}
	if err != nil {
		return err
	}

	if output == "" {
		output = args[0]
	}
	if err := catalog.SaveFile(output, c); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d sources in %s\n", len(ids), output)
	return nil
}
