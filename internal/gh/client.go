// Package gh wraps the GitHub REST API calls prgate needs: pull request
// retrieval and listing, commit comparison, and the tracking-comment upsert.
package gh

import (
	"context"
	"fmt"
	"strings"

	github_ratelimit "github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/alanmeadows/prgate/internal/promote"
)

// listPageSize caps the PR listing to a single page. Promotions carrying more
// merged PRs than this fall outside the check window, which is accepted.
const listPageSize = 100

// Client is a GitHub API client bound to a single repository.
// Uses go-github-ratelimit middleware for automatic rate limit handling.
type Client struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewClient creates a client for the given owner/repo authenticated with token.
func NewClient(owner, repo, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := github_ratelimit.NewClient(&oauth2.Transport{Source: ts})
	return &Client{
		client: gh.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
}

// GetPR retrieves a single pull request by number.
func (c *Client) GetPR(ctx context.Context, number int) (*promote.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, err)
	}
	mapped := mapPR(pr)
	return &mapped, nil
}

// ListPullRequests returns the repository's pull requests in any state,
// most recently updated first, capped at one page.
func (c *Client) ListPullRequests(ctx context.Context) ([]promote.PullRequest, error) {
	prs, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: listPageSize},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list PRs: %w", err)
	}

	mapped := make([]promote.PullRequest, 0, len(prs))
	for _, pr := range prs {
		mapped = append(mapped, mapPR(pr))
	}
	return mapped, nil
}

// CompareCommits returns the SHAs of commits reachable from head but not
// from base (the base...head comparison).
func (c *Client) CompareCommits(ctx context.Context, base, head string) ([]string, error) {
	cmp, _, err := c.client.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head,
		&gh.ListOptions{PerPage: listPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
	}

	shas := make([]string, 0, len(cmp.Commits))
	for _, commit := range cmp.Commits {
		shas = append(shas, commit.GetSHA())
	}
	return shas, nil
}

// UpsertComment finds the first comment on the PR whose body starts with
// marker and overwrites it; if none exists, a new comment is created.
// Running it twice leaves exactly one comment carrying the latest body.
func (c *Client) UpsertComment(ctx context.Context, prNumber int, marker, body string) error {
	existing, err := c.findMarkedComment(ctx, prNumber, marker)
	if err != nil {
		return err
	}

	if existing != 0 {
		_, _, err = c.client.Issues.EditComment(ctx, c.owner, c.repo, existing, &gh.IssueComment{
			Body: gh.Ptr(body),
		})
		if err != nil {
			return fmt.Errorf("failed to update comment %d: %w", existing, err)
		}
		return nil
	}

	_, _, err = c.client.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// findMarkedComment returns the ID of the first comment whose body starts
// with marker, or 0 when there is none. Authorship is not checked — any
// comment with the marker prefix is treated as ours.
func (c *Client) findMarkedComment(ctx context.Context, prNumber int, marker string) (int64, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: listPageSize},
	}
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return 0, fmt.Errorf("failed to list comments: %w", err)
		}
		for _, comment := range comments {
			if strings.HasPrefix(comment.GetBody(), marker) {
				return comment.GetID(), nil
			}
		}
		if resp.NextPage == 0 {
			return 0, nil
		}
		opts.Page = resp.NextPage
	}
}

// mapPR converts a GitHub PullRequest to the promote projection.
func mapPR(pr *gh.PullRequest) promote.PullRequest {
	return promote.PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Base:           pr.GetBase().GetRef(),
		Head:           pr.GetHead().GetRef(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
	}
}

// Verify Client satisfies the resolver's host contract at compile time.
var _ promote.HostAPI = (*Client)(nil)
