package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gimlet-io/workflow-notify/cmd/notify/config"
	"github.com/gimlet-io/workflow-notify/pkg/identity"
	"github.com/gimlet-io/workflow-notify/pkg/notifications"
	"github.com/gimlet-io/workflow-notify/pkg/workflow"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var Command = cli.Command{
	Name:  "notify",
	Usage: "Posts the outcome of a GitHub Actions workflow run to a Slack channel",
	UsageText: `workflow-notify \
     --status success \
     --channel '#builds' \
     --webhook-url https://hooks.slack.com/services/T000/B000/XXXX`,
	Flags:        Flags(),
	Action:       notify,
	OnUsageError: OnUsageError,
}

// Flags returns a new set of the notify flags.
// cli writes parsed values back into flag structs, so every app needs its own.
// Inputs are validated by the action, a missing one is reported without the help text.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "status",
			Usage:   "The conclusion of the workflow run, eg. success, failure, cancelled (INPUT_STATUS, required)",
			EnvVars: []string{"INPUT_STATUS"},
		},
		&cli.StringFlag{
			Name:    "channel",
			Usage:   "The Slack channel to post to (INPUT_CHANNEL, required)",
			EnvVars: []string{"INPUT_CHANNEL"},
		},
		&cli.StringFlag{
			Name:    "webhook-url",
			Usage:   "Slack incoming webhook url (INPUT_WEBHOOK-URL, required)",
			EnvVars: []string{"INPUT_WEBHOOK-URL"},
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the Slack payload instead of posting it",
		},
	}
}

// OnUsageError returns flag parsing errors as they are, without printing the help
func OnUsageError(c *cli.Context, err error, isSubcommand bool) error {
	return errors.Wrap(err, "incorrect usage")
}

func notify(c *cli.Context) error {
	status, err := requiredInput(c, "status")
	if err != nil {
		return err
	}
	channel, err := requiredInput(c, "channel")
	if err != nil {
		return err
	}
	webhookURL, err := requiredInput(c, "webhook-url")
	if err != nil {
		return err
	}

	cfg, err := config.Environ()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	initLogging(cfg)
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		fmt.Fprintln(c.App.ErrWriter, cfg.String())
	}

	kind, err := workflow.ParseKind(cfg.Github.EventName)
	if err != nil {
		return err
	}

	event, err := workflow.ReadEvent(kind, cfg.Github.EventPath)
	if err != nil {
		return err
	}
	run := workflow.NewRunContext(event, cfg.Github.Run())

	resolver, err := identity.NewResolver(cfg.Github.APIURL, cfg.Github.Token, cfg.HTTPTimeout)
	if err != nil {
		return err
	}
	fullName := resolver.FullName(c.Context, run.Actor)

	msg := notifications.WorkflowMessage(run, notifications.Status(status), fullName)
	slack := &notifications.SlackWebhookProvider{
		WebhookURL: webhookURL,
		Channel:    channel,
		Timeout:    cfg.HTTPTimeout,
	}

	if c.Bool("dry-run") {
		return printPayload(c, slack, msg)
	}

	logrus.Infof("notifying %s about %s workflow on %s@%s", channel, run.Workflow, run.RepoFullName, run.Branch)
	err = slack.Send(c.Context, msg)
	if err != nil {
		return errors.Wrap(err, "cannot send notification")
	}
	logrus.Infof("notification sent for %s", run.SHA)

	return nil
}

func requiredInput(c *cli.Context, name string) (string, error) {
	value := strings.TrimSpace(c.String(name))
	if value == "" {
		return "", errors.Errorf("input required and not supplied: %s", name)
	}
	return value, nil
}

func printPayload(c *cli.Context, slack *notifications.SlackWebhookProvider, msg notifications.Message) error {
	body, err := slack.Render(msg)
	if err != nil {
		return err
	}

	indented := new(bytes.Buffer)
	err = json.Indent(indented, body, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot format payload")
	}

	color.New(color.FgCyan).Fprintln(c.App.Writer, indented.String())
	return nil
}

func initLogging(c *config.Config) {
	if c.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.Logging.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if c.Logging.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint: c.Logging.Pretty,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   c.Logging.Color,
			DisableColors: !c.Logging.Color,
		})
	}
}
