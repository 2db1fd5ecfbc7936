package notifications

import "strings"

// https://api.slack.com/reference/surfaces/formatting#escaping
// Replacement is a single pass: the entities introduced for < and > are not escaped again.
var slackEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeForSlack escapes the control characters of Slack mrkdwn.
func EscapeForSlack(s string) string {
	return slackEscaper.Replace(s)
}

// RemoveAsterisks strips bold markers from text that gets wrapped in *...*
func RemoveAsterisks(s string) string {
	return strings.ReplaceAll(s, "*", "")
}
