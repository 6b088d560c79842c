package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

func newValidateCmd(a *app) *cobra.Command {
	var in inputOptions

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check every row of a file against a record type",
		Long: `Decodes a file and reports each rejected row with its error
code. With --policy stop the check ends at the first bad row; with
--policy skip every row is checked.

Exits non-zero if any row was rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := a.schemas.Lookup(in.schema)
			if err != nil {
				return err
			}
			policy, err := a.resolvePolicy(in.policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report := func(rerr *decode.RowDecodeError) {
				fmt.Fprintf(out, "%-20s %v\n", rerr.Code, rerr)
			}

			_, stats, err := a.readInput(cmd.Context(), cmd, args[0], schema, policy, report)
			var rerr *decode.RowDecodeError
			if errors.As(err, &rerr) {
				report(rerr)
				printSummary(out, schema.Name(), stats, 1)
				return mdwerror.New(fmt.Sprintf("validation stopped at row %d", rerr.Row)).
					WithCode(rerr.Code).
					WithOperation("cmd.validate").
					WithDetail("row", rerr.Row)
			}
			if err != nil {
				return err
			}

			printSummary(out, schema.Name(), stats, stats.Skipped)
			if stats.Skipped > 0 {
				return mdwerror.New(fmt.Sprintf("%d of %d rows rejected", stats.Skipped, stats.Rows)).
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("cmd.validate").
					WithDetail("rejected", stats.Skipped)
			}
			return nil
		},
	}

	in.bind(cmd, "Stock")
	return cmd
}

func printSummary(w io.Writer, schema string, stats decode.Stats, rejected int) {
	fmt.Fprintf(w, "%s: %d rows checked, %d valid, %d rejected\n", schema, stats.Rows, stats.Decoded, rejected)
}
