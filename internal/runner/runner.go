// Package runner wires the promotion check end to end: resolve the
// triggering PR, find the PRs carried by the promotion, look up their task
// statuses, and publish the tracking comment.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alanmeadows/prgate/internal/actions"
	"github.com/alanmeadows/prgate/internal/config"
	"github.com/alanmeadows/prgate/internal/gh"
	"github.com/alanmeadows/prgate/internal/promote"
	"github.com/alanmeadows/prgate/internal/tracker"
	"github.com/alanmeadows/prgate/internal/tracker/notion"
)

// Host is the source-control surface the runner needs. Satisfied by gh.Client.
type Host interface {
	promote.HostAPI
	GetPR(ctx context.Context, number int) (*promote.PullRequest, error)
	UpsertComment(ctx context.Context, prNumber int, marker, body string) error
}

// Runner executes one promotion check.
type Runner struct {
	host     Host
	source   tracker.Source
	parser   *promote.RefParser
	gate     *promote.Gate
	runURL   string
	prNumber int
}

// New builds a Runner from configuration, wiring the GitHub and Notion clients.
func New(cfg *config.Config) *Runner {
	return &Runner{
		host:   gh.NewClient(cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Token),
		source: notion.NewClient(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.Notion.IDProperty, cfg.Notion.StatusProperty),
		parser: promote.NewRefParser(cfg.TaskPrefix),
		gate:   promote.NewGate(cfg.Branches),
		runURL: actions.RunURL(),

		prNumber: cfg.GitHub.PRNumber,
	}
}

// Outcome is what a run produced, for the CLI to display.
type Outcome struct {
	// Skipped is true when the target branch is exempt from checking.
	Skipped bool
	// PR is the triggering pull request.
	PR *promote.PullRequest
	// Results holds one entry per processed PR, in processing order.
	Results []promote.Result
	// Body is the rendered tracking comment.
	Body string
	// Published is false for dry runs.
	Published bool
}

// Run performs the promotion check. Task lookups degrade to status-unknown
// with a warning; every other failure aborts the run before anything is
// published. With dryRun set, the comment upsert is skipped.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*Outcome, error) {
	current, err := r.currentPR(ctx)
	if err != nil {
		return nil, err
	}

	if r.gate.Skip(current.Base) {
		slog.Info("target branch is not a promotion stage, nothing to check",
			"pr", current.Number, "base", current.Base)
		return &Outcome{Skipped: true, PR: current}, nil
	}

	resolver := promote.NewResolver(r.host)
	prs, err := resolver.Resolve(ctx, current.Base, current.Head)
	if err != nil {
		return nil, err
	}
	if len(prs) == 0 {
		// No merged PRs ride along; check the current PR itself.
		prs = []promote.PullRequest{*current}
	}
	slog.Debug("resolved pull requests for promotion", "count", len(prs), "base", current.Base)

	results := r.checkAll(ctx, prs, current.Base)
	body := promote.Render(results, r.parser, r.runURL)

	outcome := &Outcome{
		PR:      current,
		Results: results,
		Body:    body,
	}
	if dryRun {
		return outcome, nil
	}

	if err := r.host.UpsertComment(ctx, current.Number, promote.Heading, body); err != nil {
		return nil, fmt.Errorf("publishing tracking comment on PR #%d: %w", current.Number, err)
	}
	outcome.Published = true
	return outcome, nil
}

// currentPR resolves the triggering pull request, preferring the Actions
// event payload and falling back to the configured PR number.
func (r *Runner) currentPR(ctx context.Context) (*promote.PullRequest, error) {
	ev, err := actions.EventPullRequest()
	if err == nil {
		return &promote.PullRequest{
			Number: ev.Number,
			Title:  ev.Title,
			Base:   ev.Base,
			Head:   ev.Head,
		}, nil
	}
	if !errors.Is(err, actions.ErrNoEvent) {
		return nil, err
	}

	if r.prNumber == 0 {
		return nil, errors.New("no pull request event payload and no pr_number input")
	}
	return r.host.GetPR(ctx, r.prNumber)
}

// checkAll looks up every PR's task status concurrently. Results are keyed
// by index so the report preserves input ordering regardless of completion
// order.
func (r *Runner) checkAll(ctx context.Context, prs []promote.PullRequest, base string) []promote.Result {
	results := make([]promote.Result, len(prs))

	var wg sync.WaitGroup
	for i, pr := range prs {
		wg.Add(1)
		go func(i int, pr promote.PullRequest) {
			defer wg.Done()
			results[i] = r.checkOne(ctx, pr, base)
		}(i, pr)
	}
	wg.Wait()

	return results
}

// checkOne checks a single PR against the promotion target. A missing task
// reference or a failed lookup renders the PR as failed; lookup failures are
// never escalated.
func (r *Runner) checkOne(ctx context.Context, pr promote.PullRequest, base string) promote.Result {
	result := promote.Result{PR: pr}

	taskID, ok := r.parser.Parse(pr.Title)
	if !ok {
		return result
	}
	result.TaskID = taskID
	result.HasTask = true

	status, err := r.source.Lookup(ctx, taskID)
	if err != nil {
		slog.Warn("task status lookup failed, treating status as unknown",
			"pr", pr.Number, "task", taskID, "error", err)
		return result
	}

	result.Status = status.Status
	result.URL = status.URL
	result.Passed = r.gate.Decide(status.Status, base)
	return result
}
