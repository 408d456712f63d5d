package promote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultLine(t *testing.T) {
	parser := NewRefParser("MD")

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name: "passing with link and status",
			result: Result{
				PR:      PullRequest{Number: 7, Title: "[MD-42] Add feature"},
				TaskID:  42,
				HasTask: true,
				Status:  "staging",
				URL:     "https://notion.so/x",
				Passed:  true,
			},
			want: "✅ PR #7 [MD-42](https://notion.so/x) Add feature `(staging)`",
		},
		{
			name: "no task reference",
			result: Result{
				PR: PullRequest{Number: 9, Title: "Fix bug"},
			},
			want: "❌ PR #9 Fix bug",
		},
		{
			name: "task found but status unknown",
			result: Result{
				PR:      PullRequest{Number: 11, Title: "[MD-5] Tweak"},
				TaskID:  5,
				HasTask: true,
				URL:     "https://notion.so/y",
			},
			want: "❌ PR #11 [MD-5](https://notion.so/y) Tweak",
		},
		{
			name: "task without canonical link keeps bare reference",
			result: Result{
				PR:      PullRequest{Number: 12, Title: "[MD-6] Polish"},
				TaskID:  6,
				HasTask: true,
				Status:  "dev",
				Passed:  false,
			},
			want: "❌ PR #12 [MD-6] Polish `(dev)`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Line(parser))
		})
	}
}

func TestRender(t *testing.T) {
	parser := NewRefParser("MD")
	results := []Result{
		{PR: PullRequest{Number: 7, Title: "[MD-42] Add feature"}, TaskID: 42, HasTask: true, Status: "staging", URL: "https://notion.so/x", Passed: true},
		{PR: PullRequest{Number: 9, Title: "Fix bug"}},
	}

	body := Render(results, parser, "https://github.com/acme/widgets/actions/runs/1")

	lines := strings.Split(body, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, Heading, lines[0])
	assert.Equal(t, "✅ PR #7 [MD-42](https://notion.so/x) Add feature `(staging)`", lines[1])
	assert.Equal(t, "❌ PR #9 Fix bug", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "[Workflow run](https://github.com/acme/widgets/actions/runs/1)", lines[4])

	assert.True(t, strings.HasPrefix(body, Heading), "body must start with the heading marker")
}

func TestRenderWithoutRunURL(t *testing.T) {
	body := Render([]Result{{PR: PullRequest{Number: 1, Title: "x"}}}, NewRefParser("MD"), "")
	assert.Equal(t, Heading+"\n❌ PR #1 x\n\n", body)
}
