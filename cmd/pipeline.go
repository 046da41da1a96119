package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siteforge/siteforge/internal/pipeline"
)

func newAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance past the current stage if its checkpoint passed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			mgr, err := a.Pipeline(projectName())
			if err != nil {
				return err
			}

			current := mgr.Status().CurrentStage
			if current == pipeline.TerminalStage {
				cmd.Println("pipeline is already complete")
				return nil
			}
			report, err := mgr.LoadCheckpoint(current)
			if err != nil {
				return fmt.Errorf("no checkpoint for %s; run the stage first", current)
			}
			if !report.CanProceed {
				return fmt.Errorf("checkpoint for %s blocked: %s", current, strings.Join(report.Errors, "; "))
			}

			if _, err := mgr.ProceedToNextStage(); err != nil {
				return err
			}
			cmd.Printf("advanced to %s\n", mgr.Status().CurrentStage)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the pipeline's current position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			mgr, err := a.Pipeline(projectName())
			if err != nil {
				return err
			}
			return printJSON(cmd, mgr.Status())
		},
	}
}

func newModifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modify <stage> <path=value>...",
		Short: "Apply user edits to a stage output by dotted path",
		Long: `Applies one or more edits to a stored stage output, e.g.

  siteforge modify discovery business_info.name="Acme Legal Group"

Values are parsed as JSON when possible, otherwise taken as strings.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			mgr, err := a.Pipeline(projectName())
			if err != nil {
				return err
			}

			mods := map[string]any{}
			for _, pair := range args[1:] {
				key, raw, found := strings.Cut(pair, "=")
				if !found || key == "" {
					return fmt.Errorf("modification %q is not path=value", pair)
				}
				mods[key] = parseValue(raw)
			}
			if err := mgr.ApplyUserModifications(args[0], mods); err != nil {
				return err
			}
			cmd.Printf("applied %d modification(s) to %s\n", len(mods), args[0])
			return nil
		},
	}
}

// parseValue decodes JSON scalars and structures, falling back to the
// raw string for unquoted text.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <stage>",
		Short: "Rewind the pipeline to a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			mgr, err := a.Pipeline(projectName())
			if err != nil {
				return err
			}
			if err := mgr.RestartFromStage(args[0]); err != nil {
				return err
			}
			cmd.Printf("pipeline rewound to %s\n", args[0])
			return nil
		},
	}
}
