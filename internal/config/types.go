package config

// Config is the top-level prgate configuration.
type Config struct {
	GitHub   GitHubConfig   `json:"github"`
	Notion   NotionConfig   `json:"notion"`
	Branches BranchesConfig `json:"branches"`
	// TaskPrefix is the identifier prefix expected inside the bracketed task
	// reference in PR titles, e.g. "MD" for titles like "[MD-42] Add feature".
	TaskPrefix string `json:"task_prefix"`
}

// GitHubConfig holds source-control host settings.
type GitHubConfig struct {
	Token string `json:"token"`
	// Owner and Repo identify the repository. Filled from GITHUB_REPOSITORY
	// when running under Actions.
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	// PRNumber is the explicit pull request to check. Only consulted when no
	// pull request event payload is available.
	PRNumber int `json:"pr_number"`
}

// NotionConfig holds task-tracker settings. The property names are deliberately
// configuration rather than hardcoded identifiers: Notion property IDs are
// opaque and databases differ, so the mapping is supplied at startup.
type NotionConfig struct {
	Token      string `json:"token"`
	DatabaseID string `json:"database_id"`
	// IDProperty is the numeric property used as the equality filter key.
	IDProperty string `json:"id_property"`
	// StatusProperty is the select/status property read as the task status.
	StatusProperty string `json:"status_property"`
}

// BranchesConfig names the environment branches a promotion can target.
type BranchesConfig struct {
	// Development is the branch whose PRs are never status-checked.
	Development string `json:"development"`
	// Staging is the branch gating promotion into the staging environment.
	Staging string `json:"staging"`
	// Production lists the accepted spellings of the production branch.
	Production []string `json:"production"`
}

// DefaultConfig returns a Config with sensible defaults. Tokens and the
// database ID have no defaults and must come from config files, env vars,
// or action inputs.
func DefaultConfig() Config {
	return Config{
		Notion: NotionConfig{
			IDProperty:     "ID",
			StatusProperty: "Status",
		},
		Branches: BranchesConfig{
			Development: "dev",
			Staging:     "staging",
			Production:  []string{"main", "master"},
		},
		TaskPrefix: "MD",
	}
}
