package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [name]",
		Short: "List record types or print one as JSON Schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range a.schemas.Names() {
					s, _ := a.schemas.Lookup(name)
					fmt.Fprintln(out, s.String())
				}
				return nil
			}

			s, err := a.schemas.Lookup(args[0])
			if err != nil {
				return err
			}
			doc, err := s.JSONSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(doc))
			return nil
		},
	}
	return cmd
}
