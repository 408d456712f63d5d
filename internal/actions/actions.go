// Package actions is the thin surface between prgate and the GitHub Actions
// runtime: action inputs, the triggering event payload, and workflow commands
// for surfacing warnings and errors as job annotations.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// commandOut is where workflow commands are written. Overridable in tests.
var commandOut io.Writer = os.Stdout

// IsRunner reports whether the process is running inside a GitHub Actions job.
func IsRunner() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Input returns the value of an action input, as injected by the runner
// through the INPUT_<NAME> environment convention. Dashes and spaces in the
// input name map to underscores.
func Input(name string) string {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(name))
	return strings.TrimSpace(os.Getenv("INPUT_" + key))
}

// Repository returns the "owner/name" slug of the current repository, split
// into its two parts. Both are empty when GITHUB_REPOSITORY is unset or malformed.
func Repository() (owner, name string) {
	slug := os.Getenv("GITHUB_REPOSITORY")
	parts := strings.SplitN(slug, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}

// RunURL returns the web URL of the current workflow run, or empty string
// when not running under Actions.
func RunURL() string {
	repo := os.Getenv("GITHUB_REPOSITORY")
	runID := os.Getenv("GITHUB_RUN_ID")
	if repo == "" || runID == "" {
		return ""
	}
	server := os.Getenv("GITHUB_SERVER_URL")
	if server == "" {
		server = "https://github.com"
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", server, repo, runID)
}

// Error emits an error workflow command, rendered as a failure annotation on
// the job. The process exit code, not this command, decides the run outcome.
func Error(msg string) {
	fmt.Fprintf(commandOut, "::error::%s\n", escapeData(msg))
}

// Warning emits a warning workflow command.
func Warning(msg string) {
	fmt.Fprintf(commandOut, "::warning::%s\n", escapeData(msg))
}

// escapeData escapes a workflow command payload per the Actions runner rules.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
