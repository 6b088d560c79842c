package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/internal/stocks"
)

func newCostCmd(a *app) *cobra.Command {
	var schemaName string

	cmd := &cobra.Command{
		Use:   "cost <file>",
		Short: "Compute the total cost of a portfolio",
		Long: `Sums shares * price over a portfolio file. Rows that fail to
decode are skipped and logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := a.schemas.Lookup(schemaName)
			if err != nil {
				return err
			}

			records, stats, err := a.readInput(cmd.Context(), cmd, args[0], schema, decode.PolicySkip, nil)
			if err != nil {
				return err
			}

			total, err := stocks.PortfolioCost(records)
			if err != nil {
				return err
			}

			if stats.Skipped > 0 {
				a.logger.Warn("rows skipped while computing cost", mdwlog.Fields{
					"skipped": stats.Skipped,
					"rows":    stats.Rows,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total cost %s\n", record.Repr(total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "Stock", "record type with shares and price fields")
	return cmd
}
