// Package cmd defines and implements the CLI commands for the siteforge
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siteforge/siteforge/internal/app"
)

var (
	cfgFile string
	project string
)

type appKeyType string

const appKey appKeyType = "app"

// newApp is a variable so tests can substitute a prebuilt container.
var newApp = func() (*app.App, error) {
	return app.New(cfgFile)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteforge",
		Short: "Checkpointed website rebuild pipeline",
		Long: `siteforge discovers a small-business website's structure and content,
then rebuilds it through a staged, resumable pipeline. Every stage output
is checkpointed to disk so a run can be inspected, corrected, and resumed
at any point.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app.App); ok && a != nil {
				a.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&project, "project", "", "project name (default: generated)")

	cmd.AddCommand(
		newRunCmd(),
		newAdvanceCmd(),
		newStatusCmd(),
		newModifyCmd(),
		newRestartCmd(),
		newDiscoverCmd(),
		newServeCmd(),
	)
	return cmd
}

func resolveApp(ctx context.Context) (*app.App, error) {
	a, ok := ctx.Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}

func projectName() string {
	if project != "" {
		return project
	}
	return app.NewProjectName()
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
