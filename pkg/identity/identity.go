package identity

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v37/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// GitHub rejects API requests without a User-Agent
const UserAgent = "gimlet-io/workflow-notify"

// Placeholder is shown when the full name of a user cannot be resolved
const Placeholder = "?"

// Resolver looks up the display name of GitHub users
type Resolver struct {
	client  *github.Client
	timeout time.Duration
}

// NewResolver creates a resolver against the given GitHub API.
// The token is optional, anonymous lookups are rate limited harder.
func NewResolver(apiURL string, token string, timeout time.Duration) (*Resolver, error) {
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	client.UserAgent = UserAgent

	if apiURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "invalid GitHub API url %s", apiURL)
		}
		client.BaseURL = baseURL
	}

	return &Resolver{
		client:  client,
		timeout: timeout,
	}, nil
}

// FullName returns the name set on the GitHub profile of the user, or the placeholder.
// Lookup errors are logged and never returned.
func (r *Resolver) FullName(ctx context.Context, username string) string {
	name, err := r.lookup(ctx, username)
	if err != nil {
		logrus.Debugf("cannot resolve full name of %s: %s", username, err)
		return Placeholder
	}
	if name == "" {
		return Placeholder
	}
	return name
}

func (r *Resolver) lookup(ctx context.Context, username string) (string, error) {
	// an empty login would fetch the authenticated user
	if username == "" {
		return "", errors.New("no username")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	user, _, err := r.client.Users.Get(ctx, username)
	if err != nil {
		return "", errors.Wrap(err, "user lookup failed")
	}
	return user.GetName(), nil
}
