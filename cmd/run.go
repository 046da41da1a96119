package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siteforge/siteforge/internal/pipeline"
	"github.com/siteforge/siteforge/internal/stages"
)

func newRunCmd() *cobra.Command {
	var siteURL string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline's current stage and evaluate its checkpoint",
		Long: `Executes the stage the pipeline is currently paused at, stores its
output, and evaluates the stage's checkpoint. The run stays paused at the
current stage; use "advance" to proceed once the checkpoint passes.`,
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
				cmd.Println("pipeline is complete; use restart to run a stage again")
				return nil
			}

			var input pipeline.Payload
			if current == stages.StageDiscovery {
				if siteURL == "" {
					return fmt.Errorf("the discovery stage needs --url")
				}
				input = pipeline.Payload{"url": siteURL}
			}

			if _, err := mgr.RunStage(cmd.Context(), current, input); err != nil {
				return err
			}
			report, err := mgr.Checkpoint(current, stages.Validators()[current], stages.Summarizers()[current])
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&siteURL, "url", "", "site URL (required for the discovery stage)")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(raw))
	return nil
}
