package workflow

import (
	"strings"
)

const branchRefPrefix = "refs/heads/"

// Run holds the run metadata the runner exposes as GITHUB_* variables
type Run struct {
	SHA       string
	Workflow  string
	Actor     string
	Number    string
	ID        string
	ServerURL string
}

// RunContext is everything the notification says about the run
type RunContext struct {
	Kind         Kind
	RepoFullName string
	Workflow     string
	Actor        string
	SHA          string
	RunNumber    string
	RunID        string
	ServerURL    string
	Branch       string

	// Message is the first line of the head commit message for pushes, the title for pull requests
	Message string

	PullRequestNumber int
	Action            string
}

// NewRunContext derives the run context from a validated event
func NewRunContext(event *Event, run Run) RunContext {
	ctx := RunContext{
		Kind:      event.Kind,
		Workflow:  run.Workflow,
		Actor:     run.Actor,
		SHA:       run.SHA,
		RunNumber: run.Number,
		RunID:     run.ID,
		ServerURL: strings.TrimSuffix(run.ServerURL, "/"),
	}

	switch event.Kind {
	case Push:
		push := event.Push
		ctx.RepoFullName = push.GetRepo().GetFullName()
		ctx.Branch = strings.TrimPrefix(push.GetRef(), branchRefPrefix)
		ctx.Message = firstLine(push.GetHeadCommit().GetMessage())
	case PullRequest:
		pr := event.PullRequest
		ctx.RepoFullName = pr.GetRepo().GetFullName()
		ctx.Branch = pr.GetPullRequest().GetHead().GetRef()
		ctx.Message = pr.GetPullRequest().GetTitle()
		ctx.Action = pr.GetAction()
		ctx.PullRequestNumber = pr.GetNumber()
		if ctx.PullRequestNumber == 0 {
			ctx.PullRequestNumber = pr.GetPullRequest().GetNumber()
		}
	}

	return ctx
}

// ShortSHA is the abbreviated commit hash shown in the notification
func (c RunContext) ShortSHA() string {
	if len(c.SHA) < 8 {
		return c.SHA
	}
	return c.SHA[0:8]
}

func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}
