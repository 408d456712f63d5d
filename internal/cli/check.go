package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/prgate/internal/actions"
	"github.com/alanmeadows/prgate/internal/config"
	"github.com/alanmeadows/prgate/internal/promote"
	"github.com/alanmeadows/prgate/internal/runner"
)

var checkDryRun bool

func init() {
	checkCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "Compute the report but do not post the tracking comment")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the current promotion against task statuses",
	Long: `Resolve the triggering pull request, find the merged PRs carried by the
promotion, look up each PR's task in Notion, and post or update the
tracking comment summarizing the results.

PRs targeting the development branch are exempt and the command exits
without doing anything.`,
	Example: `  prgate check
  prgate check --dry-run
  prgate check --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return reportFailure(fmt.Errorf("loading config: %w", err))
		}
		if err := cfg.Validate(); err != nil {
			return reportFailure(err)
		}

		outcome, err := runner.New(cfg).Run(cmd.Context(), checkDryRun)
		if err != nil {
			return reportFailure(err)
		}

		w := cmd.OutOrStdout()
		if outcome.Skipped {
			fmt.Fprintf(w, "PR #%d targets %s — not a promotion stage, nothing to check\n",
				outcome.PR.Number, outcome.PR.Base)
			return nil
		}

		if checkDryRun {
			fmt.Fprintln(w, resultsTable(outcome.Results))
			fmt.Fprintln(w, "Dry run: tracking comment not posted")
			return nil
		}

		fmt.Fprintf(w, "Updated tracking comment on PR #%d (%d PRs checked)\n",
			outcome.PR.Number, len(outcome.Results))
		return nil
	},
}

// reportFailure surfaces a fatal error to the hosting runtime. Under Actions
// this emits a failure annotation; the non-zero exit comes from Execute.
func reportFailure(err error) error {
	if actions.IsRunner() {
		actions.Error(err.Error())
	}
	return err
}

// resultsTable renders the dry-run results as a terminal table.
func resultsTable(results []promote.Result) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		verdict := "❌ blocked"
		if r.Passed {
			verdict = "✅ ready"
		}

		task := "—"
		if r.HasTask {
			task = fmt.Sprintf("%d", r.TaskID)
		}
		status := r.Status
		if status == "" {
			status = "unknown"
		}

		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.PR.Number),
			r.PR.Title,
			task,
			status,
			verdict,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PR", "TITLE", "TASK", "STATUS", "VERDICT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}
