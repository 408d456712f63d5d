package gh

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanmeadows/prgate/internal/promote"
)

// newTestClient creates a Client wired to a test HTTP server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)

	return &Client{
		client: client,
		owner:  "testowner",
		repo:   "testrepo",
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGetPR(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, gh.PullRequest{
			Number: gh.Ptr(7),
			Title:  gh.Ptr("[MD-42] Add feature"),
			Base:   &gh.PullRequestBranch{Ref: gh.Ptr("staging")},
			Head:   &gh.PullRequestBranch{Ref: gh.Ptr("dev")},
		})
	})

	c := newTestClient(t, mux)
	pr, err := c.GetPR(t.Context(), 7)
	require.NoError(t, err)

	assert.Equal(t, &promote.PullRequest{
		Number: 7,
		Title:  "[MD-42] Add feature",
		Base:   "staging",
		Head:   "dev",
	}, pr)
}

func TestListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("direction"))

		writeJSON(t, w, []gh.PullRequest{
			{
				Number:         gh.Ptr(3),
				Title:          gh.Ptr("[MD-3] Third"),
				MergeCommitSHA: gh.Ptr("ccc"),
				Base:           &gh.PullRequestBranch{Ref: gh.Ptr("dev")},
				Head:           &gh.PullRequestBranch{Ref: gh.Ptr("feature/three")},
			},
			{
				Number: gh.Ptr(4),
				Title:  gh.Ptr("open PR"),
				Base:   &gh.PullRequestBranch{Ref: gh.Ptr("dev")},
				Head:   &gh.PullRequestBranch{Ref: gh.Ptr("feature/four")},
			},
		})
	})

	c := newTestClient(t, mux)
	prs, err := c.ListPullRequests(t.Context())
	require.NoError(t, err)

	require.Len(t, prs, 2)
	assert.Equal(t, "ccc", prs[0].MergeCommitSHA)
	assert.Empty(t, prs[1].MergeCommitSHA)
}

func TestCompareCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/compare/staging...dev", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, gh.CommitsComparison{
			Commits: []*gh.RepositoryCommit{
				{SHA: gh.Ptr("aaa")},
				{SHA: gh.Ptr("bbb")},
			},
		})
	})

	c := newTestClient(t, mux)
	shas, err := c.CompareCommits(t.Context(), "staging", "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "bbb"}, shas)
}

func TestUpsertCommentCreates(t *testing.T) {
	var created string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []gh.IssueComment{
			{ID: gh.Ptr(int64(1)), Body: gh.Ptr("unrelated comment")},
		})
	})
	mux.HandleFunc("POST /api/v3/repos/testowner/testrepo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		var c gh.IssueComment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		created = c.GetBody()
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, gh.IssueComment{ID: gh.Ptr(int64(2))})
	})

	c := newTestClient(t, mux)
	err := c.UpsertComment(t.Context(), 7, "### Task status check", "### Task status check\nbody")
	require.NoError(t, err)
	assert.Equal(t, "### Task status check\nbody", created)
}

func TestUpsertCommentUpdatesInPlace(t *testing.T) {
	var edited string
	var editedID string
	var createCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []gh.IssueComment{
			{ID: gh.Ptr(int64(10)), Body: gh.Ptr("someone else")},
			{ID: gh.Ptr(int64(11)), Body: gh.Ptr("### Task status check\nold body")},
			{ID: gh.Ptr(int64(12)), Body: gh.Ptr("### Task status check\nduplicate, ignored")},
		})
	})
	mux.HandleFunc("PATCH /api/v3/repos/testowner/testrepo/issues/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		editedID = r.PathValue("id")
		var c gh.IssueComment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		edited = c.GetBody()
		writeJSON(t, w, gh.IssueComment{ID: gh.Ptr(int64(11))})
	})
	mux.HandleFunc("POST /api/v3/repos/testowner/testrepo/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		createCalls++
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, gh.IssueComment{})
	})

	c := newTestClient(t, mux)

	// Publishing twice must update the first marked comment, never create.
	require.NoError(t, c.UpsertComment(t.Context(), 7, "### Task status check", "### Task status check\nfirst"))
	require.NoError(t, c.UpsertComment(t.Context(), 7, "### Task status check", "### Task status check\nsecond"))

	assert.Equal(t, "11", editedID, "the first marker-prefixed comment is canonical")
	assert.Equal(t, "### Task status check\nsecond", edited)
	assert.Zero(t, createCalls)
}
