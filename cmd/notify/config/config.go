package config

import (
	"time"

	"github.com/gimlet-io/workflow-notify/pkg/workflow"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const redacted = "<redacted>"

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Github.ServerURL == "" {
		c.Github.ServerURL = "https://github.com"
	}
	if c.Github.APIURL == "" {
		c.Github.APIURL = "https://api.github.com"
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 15 * time.Second
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	safe := *c
	if safe.Github.Token != "" {
		safe.Github.Token = redacted
	}
	out, _ := yaml.Marshal(safe)
	return string(out)
}

type Config struct {
	Logging     Logging
	Github      Github
	HTTPTimeout time.Duration `envconfig:"NOTIFY_HTTP_TIMEOUT"`
}

// Logging provides the logging configuration.
// Names are prefixed, the job env is passed to the action and DEBUG or TRACE may mean something else there.
type Logging struct {
	Debug  bool `envconfig:"NOTIFY_DEBUG"`
	Trace  bool `envconfig:"NOTIFY_TRACE"`
	Color  bool `envconfig:"NOTIFY_LOGS_COLOR"`
	Pretty bool `envconfig:"NOTIFY_LOGS_PRETTY"`
	JSON   bool `envconfig:"NOTIFY_LOGS_JSON"`
}

// Github is the run context that the Actions runner exposes
// https://docs.github.com/en/actions/learn-github-actions/variables#default-environment-variables
type Github struct {
	EventName string `envconfig:"GITHUB_EVENT_NAME"`
	EventPath string `envconfig:"GITHUB_EVENT_PATH"`
	SHA       string `envconfig:"GITHUB_SHA"`
	Workflow  string `envconfig:"GITHUB_WORKFLOW"`
	Actor     string `envconfig:"GITHUB_ACTOR"`
	RunNumber string `envconfig:"GITHUB_RUN_NUMBER"`
	RunID     string `envconfig:"GITHUB_RUN_ID"`
	ServerURL string `envconfig:"GITHUB_SERVER_URL"`
	APIURL    string `envconfig:"GITHUB_API_URL"`
	Token     string `envconfig:"GITHUB_TOKEN"`
}

func (g Github) Run() workflow.Run {
	return workflow.Run{
		SHA:       g.SHA,
		Workflow:  g.Workflow,
		Actor:     g.Actor,
		Number:    g.RunNumber,
		ID:        g.RunID,
		ServerURL: g.ServerURL,
	}
}
