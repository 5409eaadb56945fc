package cmd

import (
	"github.com/compozy/upstream-sync/internal/orchestrator"
	"github.com/spf13/cobra"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	var (
		syncDryRun      bool
		syncKeepWorkdir bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the target repository with upstream",
		Long: `Synchronize the target branch and tags with the upstream repository.

The workflow:
- Clones the upstream and target repositories
- Compares commit and tag histories
- Fast-forwards or force-resets the target branch
- Mirrors the upstream tags
- Publishes the newest matching tag to a repository variable`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(opts)
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			_, err = c.orch.Execute(cmd.Context(), orchestrator.SyncOptions{
				DryRun:      syncDryRun,
				KeepWorkdir: syncKeepWorkdir,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan and report without pushing or publishing")
	cmd.Flags().BoolVar(&syncKeepWorkdir, "keep-workdir", false, "Keep the cloned repositories after the run")
	return cmd
}
