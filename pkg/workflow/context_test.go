package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var run = Run{
	SHA:       "ea9ab7cc31b2599bf4afcfd639da516ca27a4780",
	Workflow:  "Build",
	Actor:     "laszlocph",
	Number:    "17",
	ID:        "123456789",
	ServerURL: "https://github.com/",
}

func TestRunContextFromPush(t *testing.T) {
	event, err := ParseEvent(Push, []byte(pushPayload))
	require.NoError(t, err)

	ctx := NewRunContext(event, run)

	assert.Equal(t, Push, ctx.Kind)
	assert.Equal(t, "main", ctx.Branch)
	assert.Equal(t, "fix bug", ctx.Message)
	assert.Equal(t, "gimlet-io/onechart", ctx.RepoFullName)
	assert.Equal(t, "Build", ctx.Workflow)
	assert.Equal(t, "laszlocph", ctx.Actor)
	assert.Equal(t, "17", ctx.RunNumber)
	assert.Equal(t, "123456789", ctx.RunID)
	assert.Equal(t, "https://github.com", ctx.ServerURL)
	assert.Equal(t, "ea9ab7cc", ctx.ShortSHA())
	assert.Equal(t, 0, ctx.PullRequestNumber)
}

func TestRunContextFromPullRequest(t *testing.T) {
	event, err := ParseEvent(PullRequest, []byte(pullRequestPayload))
	require.NoError(t, err)

	ctx := NewRunContext(event, run)

	assert.Equal(t, PullRequest, ctx.Kind)
	assert.Equal(t, "feature/add", ctx.Branch)
	assert.Equal(t, "Add feature", ctx.Message)
	assert.Equal(t, 42, ctx.PullRequestNumber)
	assert.Equal(t, "opened", ctx.Action)
}

func TestPullRequestTitleIsNotTruncated(t *testing.T) {
	payload := `{
  "action": "synchronize",
  "number": 7,
  "pull_request": {"title": "first\nsecond", "head": {"ref": "x"}},
  "repository": {"full_name": "a/b"}
}`
	event, err := ParseEvent(PullRequest, []byte(payload))
	require.NoError(t, err)

	ctx := NewRunContext(event, run)
	assert.Equal(t, "first\nsecond", ctx.Message)
}

func TestBranchOfNestedRef(t *testing.T) {
	payload := `{"ref": "refs/heads/feature/x", "head_commit": {"message": "single line"}, "repository": {"full_name": "a/b"}}`
	event, err := ParseEvent(Push, []byte(payload))
	require.NoError(t, err)

	ctx := NewRunContext(event, run)
	assert.Equal(t, "feature/x", ctx.Branch)
	assert.Equal(t, "single line", ctx.Message)
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "abc", RunContext{SHA: "abc"}.ShortSHA())
	assert.Equal(t, "", RunContext{}.ShortSHA())
}
