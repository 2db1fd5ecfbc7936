package notifications

// Message is a notification that can be rendered for Slack
type Message interface {
	AsSlackMessage() (*slackWebhookMessage, error)
}
