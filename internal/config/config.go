package config

import (
	"errors"
	"fmt"
	"idresolve/pkg/serrors"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure. Values come
// from an optional YAML file overlaid with environment variables.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	Log struct {
		// Level is the minimum log level; candidate-local failures are logged at warn
		Level string `env:"LOG_LEVEL" env-default:"warn" yaml:"level"`
	} `yaml:"log"`

	Session struct {
		// ID is the sessionid cookie authorizing calls to the profile API
		ID string `env:"SESSION_ID" yaml:"id"`
	} `yaml:"session"`

	Instagram struct {
		// WebBaseURL is used for the session check and profile page probe
		WebBaseURL string `env:"IG_WEB_BASE_URL" env-default:"https://www.instagram.com" yaml:"webBaseURL"`
		// APIBaseURL is used for user info and account lookup
		APIBaseURL string `env:"IG_API_BASE_URL" env-default:"https://i.instagram.com/api/v1" yaml:"apiBaseURL"`
		// WebUserAgent is sent on profile API calls
		WebUserAgent string `env:"IG_WEB_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36" yaml:"webUserAgent"` //nolint: lll
		// LookupUserAgent is sent on account lookup calls
		LookupUserAgent string `env:"IG_LOOKUP_USER_AGENT" env-default:"Instagram 101.0.0.15.120" yaml:"lookupUserAgent"`
		// SigKey is the HMAC key used to sign account lookup bodies
		SigKey string `env:"IG_SIG_KEY" yaml:"sigKey"`
		// SigKeyVersion is the version tag sent along the signature
		SigKeyVersion string `env:"IG_SIG_KEY_VERSION" env-default:"4" yaml:"sigKeyVersion"`
		// RequestTimeout bounds every HTTP request
		RequestTimeout time.Duration `env:"IG_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// RatePerSecond is the permit rate of the profile API gate
		RatePerSecond float64 `env:"IG_RATE_PER_SECOND" env-default:"1" yaml:"ratePerSecond"`
		// LookupMaxRetries is how often a throttled lookup is retried
		LookupMaxRetries int `env:"IG_LOOKUP_MAX_RETRIES" env-default:"3" yaml:"lookupMaxRetries"`
	} `yaml:"instagram"`

	Search struct {
		// URL is the candidate search page; the name is appended
		URL string `env:"SEARCH_URL" env-default:"https://dumpor.com/search?query=" yaml:"url"`
		// UserAgent is sent to the search page
		UserAgent string `env:"SEARCH_USER_AGENT" env-default:"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0" yaml:"userAgent"` //nolint: lll
	} `yaml:"search"`

	Pipeline struct {
		// Delay is waited between two candidates
		Delay time.Duration `env:"PIPELINE_DELAY" env-default:"0s" yaml:"delay"`
	} `yaml:"pipeline"`

	Metrics struct {
		// File, when set, receives a Prometheus textfile dump after the run
		File string `env:"METRICS_FILE" yaml:"file"`
	} `yaml:"metrics"`
}

// Load reads .env (if present), then the YAML file at configPath (if present),
// then the environment. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}

// RequireSession checks that a session credential is configured.
func (c *Config) RequireSession() error {
	if c.Session.ID == "" {
		return serrors.With(serrors.ErrConfig, "SESSION_ID must be set")
	}

	return nil
}

// RequireSigning checks that lookup signing material is configured.
func (c *Config) RequireSigning() error {
	if c.Instagram.SigKey == "" {
		return serrors.With(serrors.ErrConfig, "IG_SIG_KEY must be set")
	}
	if c.Instagram.SigKeyVersion == "" {
		return serrors.With(serrors.ErrConfig, "IG_SIG_KEY_VERSION must be set")
	}

	return nil
}
