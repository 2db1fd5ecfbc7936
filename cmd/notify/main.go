package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/workflow-notify/pkg/commands/notify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not load .env file: %s", err)
	}

	app := &cli.App{
		Name:         "workflow-notify",
		Usage:        notify.Command.Usage,
		UsageText:    notify.Command.UsageText,
		Flags:        notify.Flags(),
		Action:       notify.Command.Action,
		OnUsageError: notify.OnUsageError,
	}
	err = app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", emoji.CrossMark, err.Error())
		fmt.Printf("::error::%s\n", escapeWorkflowCommand(err.Error()))
		os.Exit(1)
	}
}

// escapeWorkflowCommand escapes the data part of a GitHub Actions workflow command
func escapeWorkflowCommand(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
