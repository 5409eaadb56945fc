package cmd

import (
	"github.com/compozy/upstream-sync/pkg/version"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:   "upstream-sync",
	Short: "Keep a repository in sync with its upstream",
	Long: `upstream-sync mirrors an upstream branch and its tags into a target repository.

It compares both commit and tag histories, fast-forwards or force-resets the
target as needed, and records the newest matching tag in a repository variable.`,
	Version:       version.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// InitCommands registers the flags and subcommands of the root command
func InitCommands() {
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default .upstream-sync.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(
		newSyncCmd(),
		newPlanCmd(),
		newVersionCmd(),
	)
}

func Execute() error {
	return rootCmd.Execute()
}
