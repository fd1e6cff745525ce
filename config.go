package zaim

//go:generate go run ./cmd/gendocs -file config.go -file cmd/zaim/main.go -o CONFIGURATION.md

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const defaultTimeout = 30 * time.Second

// Config is loaded from the environment with LoadConfig or filled in by hand.
type Config struct {
	// ConsumerKey and ConsumerSecret identify the application. They are
	// issued at https://dev.zaim.net
	ConsumerKey    string `envconfig:"ZAIM_CONSUMER_KEY"`
	ConsumerSecret string `envconfig:"ZAIM_CONSUMER_SECRET"`

	// AccessToken and AccessTokenSecret authorize requests on behalf of a
	// user. Leave them empty to run the handshake first.
	AccessToken       string `envconfig:"ZAIM_ACCESS_TOKEN"`
	AccessTokenSecret string `envconfig:"ZAIM_ACCESS_TOKEN_SECRET"`

	// BaseURL of the API. The token endpoints are derived from it.
	BaseURL string `envconfig:"ZAIM_BASE_URL" default:"https://api.zaim.net"`

	// AuthorizeURL is the browser page where users approve request tokens
	AuthorizeURL string `envconfig:"ZAIM_AUTH_URL" default:"https://auth.zaim.net/users/auth"`

	// Timeout per request. 0 selects the 30s default, a negative value
	// disables it
	Timeout time.Duration `envconfig:"ZAIM_TIMEOUT" default:"30s"`

	UserAgent string `envconfig:"ZAIM_USER_AGENT"`

	// DeleteViaPut sends deletes with the PUT verb. Some OAuth proxies only
	// pass GET, POST and PUT.
	DeleteViaPut bool `envconfig:"ZAIM_DELETE_VIA_PUT" default:"false"`

	// Signer replaces the default HMAC-SHA1 signer, mostly for tests.
	Signer Signer `ignored:"true"`

	// HTTPClient is the base client for the default signer.
	HTTPClient *http.Client `ignored:"true"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `ignored:"true"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}
	return cfg, nil
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var errs []error
	if c.ConsumerKey == "" {
		errs = append(errs, errors.New("consumer key is required"))
	}
	if c.ConsumerSecret == "" {
		errs = append(errs, errors.New("consumer secret is required"))
	}
	return errors.Join(errs...)
}

// withDefaults fills the fields envconfig would default when Config was
// built by hand.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.zaim.net"
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.AuthorizeURL == "" {
		c.AuthorizeURL = "https://auth.zaim.net/users/auth"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
