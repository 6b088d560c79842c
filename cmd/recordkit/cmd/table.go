package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/msto63/recordkit/internal/tableformat"
)

func newTableCmd(a *app) *cobra.Command {
	var (
		in     inputOptions
		format string
		fields []string
		upper  bool
		types  []string
	)

	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "Print decoded records as a table",
		Long: `Decodes a CSV or JSON-lines file into records and prints the
selected fields as a table. With --types the file is read without a
record type: each column is converted with the given kind (str, int or
float) and the header row names the columns.

Examples:
  recordkit table portfolio.csv
  recordkit table portfolio.csv --fields name,shares --format csv
  recordkit table portfolio.csv --format pretty --policy skip
  recordkit table prices.csv --types str,float`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Table.Format
			}
			f, err := tableformat.New(format, cmd.OutOrStdout(), tableformat.Options{
				UpperHeaders:  upper || a.cfg.Table.UpperHeaders,
				ColumnFormats: a.cfg.Table.ColumnFormats,
			})
			if err != nil {
				return err
			}

			if len(types) > 0 {
				headers, rows, err := a.readDicts(cmd.Context(), cmd, args[0], types)
				if err != nil {
					return err
				}
				if len(fields) == 0 {
					fields = headers
				}
				return tableformat.PrintDicts(rows, fields, f)
			}

			schema, err := a.schemas.Lookup(in.schema)
			if err != nil {
				return err
			}
			policy, err := a.resolvePolicy(in.policy)
			if err != nil {
				return err
			}
			records, _, err := a.readInput(cmd.Context(), cmd, args[0], schema, policy, nil)
			if err != nil {
				return err
			}

			if len(fields) == 0 {
				fields = schema.FieldNames()
			}
			return tableformat.PrintTable(slices.Values(records), fields, f)
		},
	}

	in.bind(cmd, "Stock")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text|csv|html|pretty (default: from config)")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "fields to print (default: all)")
	cmd.Flags().BoolVar(&upper, "upper", false, "upper-case the headings")
	cmd.Flags().StringSliceVar(&types, "types", nil, "column kinds for reading without a record type, e.g. str,int,float")
	cmd.MarkFlagsMutuallyExclusive("types", "schema")
	return cmd
}
