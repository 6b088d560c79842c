package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/recordkit/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintln(cmd.OutOrStdout(), info.Short("recordkit"))
			fmt.Fprint(cmd.OutOrStdout(), info.String())
		},
	}

	// no config needed
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	return cmd
}
