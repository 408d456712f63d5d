// Package promote holds the core reconciliation logic: parsing task
// references out of PR titles, deciding whether a task status is far enough
// along for a target branch, resolving which merged PRs ride along with a
// promotion, and rendering the status report.
package promote

// PullRequest is the projection of a host pull request that promotion
// checking needs. The title is parsed, never mutated.
type PullRequest struct {
	Number int
	Title  string
	// Base is the target branch, Head the source branch.
	Base string
	Head string
	// MergeCommitSHA is set for merged PRs and empty otherwise.
	MergeCommitSHA string
}
