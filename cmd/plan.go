package cmd

import (
	"fmt"

	"github.com/compozy/upstream-sync/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newPlanCmd creates the plan command
func newPlanCmd() *cobra.Command {
	var planKeepWorkdir bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a sync would do",
		Long: `Clone and compare both repositories, then print the sync plan.

No branch, tag or variable is changed. Outputs and the step summary are
still written when their paths are configured.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(opts)
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			result, err := c.orch.Execute(cmd.Context(), orchestrator.SyncOptions{
				DryRun:      true,
				KeepWorkdir: planKeepWorkdir,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&planKeepWorkdir, "keep-workdir", false, "Keep the cloned repositories after the run")
	return cmd
}
