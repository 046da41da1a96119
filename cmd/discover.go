package cmd

import (
	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <url>",
		Short: "Run URL discovery against a site without touching pipeline state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			set, err := a.Engine().Discover(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, set)
		},
	}
}
