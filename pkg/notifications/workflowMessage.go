package notifications

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gimlet-io/workflow-notify/pkg/workflow"
)

const defaultServerURL = "https://github.com"

type workflowMessage struct {
	run      workflow.RunContext
	status   Status
	fullName string
}

// WorkflowMessage summarizes the outcome of a workflow run.
// fullName is the resolved display name of the actor.
func WorkflowMessage(run workflow.RunContext, status Status, fullName string) Message {
	return &workflowMessage{
		run:      run,
		status:   status,
		fullName: fullName,
	}
}

func (wm *workflowMessage) AsSlackMessage() (*slackWebhookMessage, error) {
	run := wm.run
	server := run.ServerURL
	if server == "" {
		server = defaultServerURL
	}
	repoURL := fmt.Sprintf("%s/%s", server, run.RepoFullName)

	// workflow and repo@branch are wrapped in bold markers, asterisks in them would end the bold early
	boldableWorkflow := EscapeForSlack(RemoveAsterisks(run.Workflow))
	boldableRepoAndBranch := EscapeForSlack(RemoveAsterisks(fmt.Sprintf("%s@%s", run.RepoFullName, run.Branch)))

	fallback := fmt.Sprintf("The %s workflow on %s@%s %s",
		EscapeForSlack(run.Workflow), EscapeForSlack(run.RepoFullName), EscapeForSlack(run.Branch), wm.status.Text())

	header := fmt.Sprintf("The *%s* workflow on <%s/tree/%s|*%s*> %s",
		boldableWorkflow, repoURL, run.Branch, boldableRepoAndBranch, wm.status.Text())

	statusLine := fmt.Sprintf("%s *%s*", wm.status.Emoji(), EscapeForSlack(run.Message))

	details := fmt.Sprintf("<%s/actions?query=workflow%%3A\"%s\"|*%s*> #%s: %s by <%s/%s|%s> (%s)",
		repoURL, encodeURIComponent(run.Workflow), boldableWorkflow,
		run.RunNumber,
		eventPhrase(run, repoURL),
		server, run.Actor, EscapeForSlack(run.Actor),
		EscapeForSlack(wm.fullName),
	)

	noEmoji := false
	msg := &slackWebhookMessage{
		Attachments: []Attachment{
			{
				Color:    wm.status.Color(),
				Fallback: fallback,
				Blocks: []Block{
					{
						Type: section,
						Text: &Text{
							Type: markdown,
							Text: header,
						},
						Accessory: &Accessory{
							Type: button,
							Text: &Text{
								Type:  plainText,
								Text:  "View Run",
								Emoji: &noEmoji,
							},
							Url: fmt.Sprintf("%s/actions/runs/%s", repoURL, run.RunID),
						},
					},
					{Type: divider},
					{
						Type: section,
						Text: &Text{
							Type: markdown,
							Text: statusLine,
						},
					},
					{
						Type: contextString,
						Elements: []Text{
							{Type: markdown, Text: details},
						},
					},
					{Type: divider},
				},
			},
		},
	}

	return msg, nil
}

func eventPhrase(run workflow.RunContext, repoURL string) string {
	if run.Kind == workflow.PullRequest {
		return fmt.Sprintf("Pull request <%s/pull/%d|#%d> %s",
			repoURL, run.PullRequestNumber, run.PullRequestNumber, EscapeForSlack(run.Action))
	}
	return fmt.Sprintf("Commit <%s/commit/%s|%s> pushed", repoURL, run.SHA, run.ShortSHA())
}

// QueryEscape leaves + only for spaces and escapes the marks that encodeURIComponent keeps
var uriComponentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes like the JavaScript function of the same name
func encodeURIComponent(s string) string {
	return uriComponentFixer.Replace(url.QueryEscape(s))
}
