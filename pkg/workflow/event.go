package workflow

import (
	"io/ioutil"

	"github.com/google/go-github/v37/github"
	"github.com/pkg/errors"
)

// Kind is the name of the GitHub event that triggered the workflow
type Kind string

const (
	Push        Kind = "push"
	PullRequest Kind = "pull_request"
)

var ErrUnsupportedEvent = errors.New("events other than `push` and `pull_request` are not supported")

// ParseKind validates the GITHUB_EVENT_NAME of the run
func ParseKind(eventName string) (Kind, error) {
	switch Kind(eventName) {
	case Push, PullRequest:
		return Kind(eventName), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedEvent, "got `%s`", eventName)
	}
}

// Event is the webhook payload of the triggering event.
// Exactly one of Push and PullRequest is set, matching Kind.
type Event struct {
	Kind        Kind
	Push        *github.PushEvent
	PullRequest *github.PullRequestEvent
}

// ReadEvent parses the event payload that the runner stores at GITHUB_EVENT_PATH
func ReadEvent(kind Kind, path string) (*Event, error) {
	if path == "" {
		return nil, errors.New("GITHUB_EVENT_PATH is not set")
	}
	payload, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read event payload")
	}
	return ParseEvent(kind, payload)
}

// ParseEvent parses and validates the payload of a push or pull_request event.
// Fields that the notification is built from must be present.
func ParseEvent(kind Kind, payload []byte) (*Event, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	parsed, err := github.ParseWebHook(string(kind), payload)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s event payload", kind)
	}

	switch e := parsed.(type) {
	case *github.PushEvent:
		if err := validatePush(e); err != nil {
			return nil, err
		}
		return &Event{Kind: Push, Push: e}, nil
	case *github.PullRequestEvent:
		if err := validatePullRequest(e); err != nil {
			return nil, err
		}
		return &Event{Kind: PullRequest, PullRequest: e}, nil
	default:
		return nil, errors.Errorf("unexpected payload type %T for %s event", parsed, kind)
	}
}

func validatePush(e *github.PushEvent) error {
	if e.Ref == nil {
		return missingField(Push, "ref")
	}
	if e.HeadCommit == nil || e.HeadCommit.Message == nil {
		return missingField(Push, "head_commit.message")
	}
	if e.GetRepo().GetFullName() == "" {
		return missingField(Push, "repository.full_name")
	}
	return nil
}

func validatePullRequest(e *github.PullRequestEvent) error {
	if e.Action == nil {
		return missingField(PullRequest, "action")
	}
	if e.PullRequest == nil {
		return missingField(PullRequest, "pull_request")
	}
	if e.Number == nil && e.PullRequest.Number == nil {
		return missingField(PullRequest, "number")
	}
	if e.PullRequest.Title == nil {
		return missingField(PullRequest, "pull_request.title")
	}
	if e.PullRequest.GetHead().GetRef() == "" {
		return missingField(PullRequest, "pull_request.head.ref")
	}
	if e.GetRepo().GetFullName() == "" {
		return missingField(PullRequest, "repository.full_name")
	}
	return nil
}

func missingField(kind Kind, field string) error {
	return errors.Errorf("%s event payload has no `%s`", kind, field)
}
