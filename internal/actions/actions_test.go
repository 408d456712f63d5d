package actions

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput(t *testing.T) {
	t.Setenv("INPUT_NOTION_TOKEN", "  secret_abc  ")
	t.Setenv("INPUT_PR_NUMBER", "42")

	assert.Equal(t, "secret_abc", Input("notion_token"))
	assert.Equal(t, "secret_abc", Input("notion-token"))
	assert.Equal(t, "42", Input("pr_number"))
	assert.Equal(t, "", Input("missing"))
}

func TestRepository(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
	owner, name := Repository()
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", name)

	t.Setenv("GITHUB_REPOSITORY", "not-a-slug")
	owner, name = Repository()
	assert.Empty(t, owner)
	assert.Empty(t, name)
}

func TestRunURL(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
	t.Setenv("GITHUB_RUN_ID", "123456")
	t.Setenv("GITHUB_SERVER_URL", "")
	assert.Equal(t, "https://github.com/acme/widgets/actions/runs/123456", RunURL())

	t.Setenv("GITHUB_SERVER_URL", "https://ghe.example.com")
	assert.Equal(t, "https://ghe.example.com/acme/widgets/actions/runs/123456", RunURL())

	t.Setenv("GITHUB_RUN_ID", "")
	assert.Empty(t, RunURL())
}

func TestErrorEscapesWorkflowCommand(t *testing.T) {
	var buf bytes.Buffer
	orig := commandOut
	commandOut = &buf
	t.Cleanup(func() { commandOut = orig })

	Error("bad thing: 100% broken\nsee logs")
	assert.Equal(t, "::error::bad thing: 100%25 broken%0Asee logs\n", buf.String())

	buf.Reset()
	Warning("heads up")
	assert.Equal(t, "::warning::heads up\n", buf.String())
}
