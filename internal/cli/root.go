package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/prgate/internal/logging"
)

var (
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "prgate",
		Short: "Gate pull request promotions on task-tracker status",
		Long: `prgate reconciles pull requests with their Notion tasks: it reads the task
reference embedded in each PR title, looks up the task's status, decides
whether that status is far enough along for the PR's target branch, and
keeps a single tracking comment on the PR up to date.

Designed to run inside a GitHub Actions job, but works locally too.`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Local development convenience; tokens come from the environment in CI.
		_ = godotenv.Load()
		logging.Setup(verbose)
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
