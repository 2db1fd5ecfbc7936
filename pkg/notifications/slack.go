package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const markdown = "mrkdwn"
const plainText = "plain_text"
const section = "section"
const contextString = "context"
const divider = "divider"
const button = "button"

// SlackWebhookProvider posts messages to a Slack incoming webhook
type SlackWebhookProvider struct {
	WebhookURL string
	Channel    string
	Timeout    time.Duration
	Client     *http.Client
}

type slackWebhookMessage struct {
	Channel     string       `json:"channel"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Color    string  `json:"color"`
	Fallback string  `json:"fallback"`
	Blocks   []Block `json:"blocks"`
}

type Block struct {
	Type      string     `json:"type"`
	Text      *Text      `json:"text,omitempty"`
	Accessory *Accessory `json:"accessory,omitempty"`
	Elements  []Text     `json:"elements,omitempty"`
}

type Accessory struct {
	Type string `json:"type"`
	Text *Text  `json:"text"`
	Url  string `json:"url"`
}

type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji *bool  `json:"emoji,omitempty"`
}

// Render returns the JSON body that Send posts
func (s *SlackWebhookProvider) Render(msg Message) ([]byte, error) {
	slackMessage, err := msg.AsSlackMessage()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create slack message")
	}
	slackMessage.Channel = s.Channel

	b := new(bytes.Buffer)
	err = json.NewEncoder(b).Encode(slackMessage)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode slack message")
	}
	return b.Bytes(), nil
}

// Send delivers the message. Transport errors and non-2xx responses are returned, there is no retry.
func (s *SlackWebhookProvider) Send(ctx context.Context, msg Message) error {
	body, err := s.Render(msg)
	if err != nil {
		return err
	}

	return s.post(ctx, body)
}

func (s *SlackWebhookProvider) post(ctx context.Context, body []byte) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "invalid webhook url")
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	client := s.Client
	if client == nil {
		client = &http.Client{}
	}
	res, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not post to slack")
	}
	defer res.Body.Close()

	resBody, _ := ioutil.ReadAll(res.Body)
	logrus.Debugf("Slack response: %s", string(resBody))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("could not post to slack, status: %d, response: %s", res.StatusCode, string(resBody))
	}

	return nil
}
