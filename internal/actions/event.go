package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoEvent indicates that no pull request event payload is available,
// either because GITHUB_EVENT_PATH is unset or the payload carries no PR.
var ErrNoEvent = errors.New("no pull request event payload available")

// PullRequestEvent is the slice of the pull_request webhook payload prgate
// consumes. Everything else in the payload is ignored.
type PullRequestEvent struct {
	Number int
	Title  string
	Base   string
	Head   string
}

// EventPullRequest reads the triggering event payload from GITHUB_EVENT_PATH
// and extracts the pull request it describes. Returns ErrNoEvent when the
// payload is absent or is not a pull request event, so callers can fall back
// to an explicit PR number input.
func EventPullRequest() (*PullRequestEvent, error) {
	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return nil, ErrNoEvent
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	return parseEvent(data)
}

// parseEvent decodes a pull_request event payload. Split out for tests.
func parseEvent(data []byte) (*PullRequestEvent, error) {
	var payload struct {
		PullRequest *struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
			Base   struct {
				Ref string `json:"ref"`
			} `json:"base"`
			Head struct {
				Ref string `json:"ref"`
			} `json:"head"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing event payload: %w", err)
	}
	if payload.PullRequest == nil || payload.PullRequest.Number == 0 {
		return nil, ErrNoEvent
	}

	return &PullRequestEvent{
		Number: payload.PullRequest.Number,
		Title:  payload.PullRequest.Title,
		Base:   payload.PullRequest.Base.Ref,
		Head:   payload.PullRequest.Head.Ref,
	}, nil
}
