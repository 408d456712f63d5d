package promote

import (
	"context"
	"fmt"
	"sync"
)

// HostAPI is the slice of the source-control host the resolver depends on.
// Implemented by gh.Client; kept narrow so the resolver is testable without
// a live network.
type HostAPI interface {
	// ListPullRequests returns the repository's pull requests, any state,
	// most recently updated first, capped at one page.
	ListPullRequests(ctx context.Context) ([]PullRequest, error)
	// CompareCommits returns the SHAs of commits in head but not base
	// (a base...head comparison).
	CompareCommits(ctx context.Context, base, head string) ([]string, error)
}

// Resolver determines which previously merged pull requests are carried by a
// promotion: merging dev into staging, say, brings along every PR whose merge
// commit sits in the staging...dev diff.
type Resolver struct {
	host HostAPI
}

// NewResolver creates a Resolver backed by the given host.
func NewResolver(host HostAPI) *Resolver {
	return &Resolver{host: host}
}

// Resolve returns the pull requests associated with the base←head promotion,
// in the host's listing order. The PR list and the commit comparison are
// fetched concurrently. PRs beyond the listing's page cap are not considered.
// An empty result is valid; the caller falls back to the current PR alone.
func (r *Resolver) Resolve(ctx context.Context, base, head string) ([]PullRequest, error) {
	var (
		wg      sync.WaitGroup
		prs     []PullRequest
		shas    []string
		listErr error
		cmpErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		prs, listErr = r.host.ListPullRequests(ctx)
	}()
	go func() {
		defer wg.Done()
		shas, cmpErr = r.host.CompareCommits(ctx, base, head)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, fmt.Errorf("listing pull requests: %w", listErr)
	}
	if cmpErr != nil {
		return nil, fmt.Errorf("comparing %s...%s: %w", base, head, cmpErr)
	}

	inDiff := make(map[string]bool, len(shas))
	for _, sha := range shas {
		inDiff[sha] = true
	}

	var associated []PullRequest
	for _, pr := range prs {
		if pr.MergeCommitSHA != "" && inDiff[pr.MergeCommitSHA] {
			associated = append(associated, pr)
		}
	}
	return associated, nil
}
