package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/tidwall/jsonc"

	"github.com/alanmeadows/prgate/internal/actions"
)

// Load reads and merges configuration from user-level and repo-level JSONC files.
// Resolution order: defaults → user config (~/.config/prgate/prgate.jsonc) →
// repo config (.prgate/prgate.jsonc) → environment variables and action inputs.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	userDir, err := os.UserConfigDir()
	if err == nil {
		userPath := filepath.Join(userDir, "prgate", "prgate.jsonc")
		if userMap, err := loadJSONC(userPath); err == nil {
			if err := mergeIntoConfig(&cfg, userMap); err != nil {
				return nil, fmt.Errorf("merging user config: %w", err)
			}
		}
	}

	repoRoot := findRepoRoot()
	if repoRoot != "" {
		repoPath := filepath.Join(repoRoot, RepoConfigPath)
		if repoMap, err := loadJSONC(repoPath); err == nil {
			if err := mergeIntoConfig(&cfg, repoMap); err != nil {
				return nil, fmt.Errorf("merging repo config: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// RepoConfigPath is the repo-relative location of the project config file.
const RepoConfigPath = ".prgate/prgate.jsonc"

// Validate checks that the fields every run needs are present.
func (c *Config) Validate() error {
	var missing []string
	if c.GitHub.Token == "" {
		missing = append(missing, "github token")
	}
	if c.Notion.Token == "" {
		missing = append(missing, "notion token")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "notion database id")
	}
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		missing = append(missing, "repository (owner/repo)")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

// loadJSONC reads a JSONC file and returns it as a map.
func loadJSONC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// mergeIntoConfig marshals the config to a map, deep-merges the source map over it,
// then unmarshals back to the Config struct.
func mergeIntoConfig(cfg *Config, src map[string]any) error {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var dst map[string]any
	if err := json.Unmarshal(cfgBytes, &dst); err != nil {
		return err
	}

	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return err
	}

	merged, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, cfg)
}

// RepoRoot returns the detected git repository root, or empty string if not in a repo.
func RepoRoot() string {
	return findRepoRoot()
}

// findRepoRoot finds the git repository root via git rev-parse.
func findRepoRoot() string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// applyEnvOverrides applies environment variables and Actions inputs to the
// config. Action inputs win over plain env vars so a workflow can pin values
// explicitly regardless of the runner environment.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		cfg.Notion.Token = token
	}
	if db := os.Getenv("NOTION_DATABASE_ID"); db != "" {
		cfg.Notion.DatabaseID = db
	}

	if owner, repo := actions.Repository(); owner != "" {
		cfg.GitHub.Owner = owner
		cfg.GitHub.Repo = repo
	}

	if token := actions.Input("github_token"); token != "" {
		cfg.GitHub.Token = token
	}
	if token := actions.Input("notion_token"); token != "" {
		cfg.Notion.Token = token
	}
	if db := actions.Input("notion_database_id"); db != "" {
		cfg.Notion.DatabaseID = db
	}
	if raw := actions.Input("pr_number"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.GitHub.PRNumber = n
		}
	}
}
