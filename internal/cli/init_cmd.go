package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/prgate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create the repo config file",
	Long: `Walk through the prgate settings for this repository and write them to
` + config.RepoConfigPath + `.

Tokens are never written to the config file — supply them through the
GITHUB_TOKEN and NOTION_TOKEN environment variables or action inputs.`,
	Example: `  prgate init`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := config.DefaultConfig()

		var (
			databaseID     = ""
			taskPrefix     = defaults.TaskPrefix
			idProperty     = defaults.Notion.IDProperty
			statusProperty = defaults.Notion.StatusProperty
			development    = defaults.Branches.Development
			staging        = defaults.Branches.Staging
			production     = strings.Join(defaults.Branches.Production, ", ")
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Notion database ID").
					Description("The database holding your tasks").
					Value(&databaseID),
				huh.NewInput().
					Title("Task prefix").
					Description("Prefix in PR title references, e.g. MD for [MD-42]").
					Value(&taskPrefix),
				huh.NewInput().
					Title("ID property").
					Description("Numeric Notion property matched against the task ID").
					Value(&idProperty),
				huh.NewInput().
					Title("Status property").
					Description("Select/status Notion property read as the task status").
					Value(&statusProperty),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Development branch").
					Value(&development),
				huh.NewInput().
					Title("Staging branch").
					Value(&staging),
				huh.NewInput().
					Title("Production branches").
					Description("Comma-separated accepted spellings").
					Value(&production),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("collecting settings: %w", err)
		}

		cfg := defaults
		cfg.Notion.DatabaseID = databaseID
		cfg.Notion.IDProperty = idProperty
		cfg.Notion.StatusProperty = statusProperty
		cfg.TaskPrefix = taskPrefix
		cfg.Branches.Development = development
		cfg.Branches.Staging = staging
		cfg.Branches.Production = splitList(production)

		root := config.RepoRoot()
		if root == "" {
			return fmt.Errorf("not in a git repository")
		}
		path := filepath.Join(root, config.RepoConfigPath)

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
