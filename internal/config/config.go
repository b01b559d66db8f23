// Package config loads outdated's settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for outdated.
type Config struct {
	ThresholdYears int           `mapstructure:"threshold_years"`
	Concurrency    int           `mapstructure:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	UserAgent      string        `mapstructure:"user_agent"`
	Format         string        `mapstructure:"format"`
	Repositories   []Repository  `mapstructure:"repositories"`
	Artifacts      []string      `mapstructure:"artifacts"`
	Ignore         []string      `mapstructure:"ignore"`
	FailOnOutdated bool          `mapstructure:"fail_on_outdated"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
	// FormatSet reports whether format came from a flag, the environment or
	// the config file rather than the default.
	FormatSet bool `mapstructure:"-"`
}

// Repository is a configured remote repository. An entry with only an id
// refers to a well-known repository.
type Repository struct {
	ID  string `mapstructure:"id"`
	URL string `mapstructure:"url"`
}

// Ref renders the repository in the form accepted by the repository resolver.
func (r Repository) Ref() string {
	switch {
	case r.URL == "":
		return r.ID
	case r.ID == "":
		return r.URL
	default:
		return r.ID + "=" + r.URL
	}
}

var formats = []string{"text", "json", "yaml", "github", "junit"}

var defaultConfig = Config{
	ThresholdYears: 1,
	Concurrency:    8,
	Timeout:        30 * time.Second,
	MaxRetries:     3,
	UserAgent:      "git-pkgs-outdated/1.0",
	Format:         "text",
	Repositories:   []Repository{{ID: "central"}},
}

// Default returns the built-in configuration.
func Default() *Config {
	c := defaultConfig
	c.Repositories = append([]Repository(nil), defaultConfig.Repositories...)
	return &c
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"threshold_years":  "threshold-years",
	"concurrency":      "concurrency",
	"timeout":          "timeout",
	"max_retries":      "max-retries",
	"user_agent":       "user-agent",
	"format":           "format",
	"ignore":           "ignore",
	"fail_on_outdated": "fail-on-outdated",
}

// Load reads configuration. When path is empty, .outdated.{yaml,yml,json,toml}
// is looked up in the working directory and then $HOME; a missing file is not
// an error. Precedence: changed flags, OUTDATED_* environment variables, the
// config file, defaults. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("threshold_years", defaultConfig.ThresholdYears)
	v.SetDefault("concurrency", defaultConfig.Concurrency)
	v.SetDefault("timeout", defaultConfig.Timeout)
	v.SetDefault("max_retries", defaultConfig.MaxRetries)
	v.SetDefault("user_agent", defaultConfig.UserAgent)
	v.SetDefault("format", defaultConfig.Format)
	v.SetDefault("repositories", []map[string]string{{"id": "central"}})
	v.SetDefault("artifacts", []string{})
	v.SetDefault("ignore", []string{})
	v.SetDefault("fail_on_outdated", defaultConfig.FailOnOutdated)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".outdated")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("OUTDATED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Source = v.ConfigFileUsed()
	config.FormatSet = os.Getenv("OUTDATED_FORMAT") != "" || v.InConfig("format") || (flags != nil && flags.Changed("format"))

	return &config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.ThresholdYears < 0 {
		errs = append(errs, fmt.Errorf("threshold_years must be >= 0, got %d", c.ThresholdYears))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries))
	}
	if !validFormat(c.Format) {
		errs = append(errs, fmt.Errorf("format must be one of %s, got %q", strings.Join(formats, ", "), c.Format))
	}
	if len(c.Repositories) == 0 {
		errs = append(errs, errors.New("at least one repository is required"))
	}
	for i, r := range c.Repositories {
		if r.ID == "" && r.URL == "" {
			errs = append(errs, fmt.Errorf("repositories[%d] needs an id or a url", i))
		}
		if r.URL != "" && !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
			errs = append(errs, fmt.Errorf("repositories[%d] url must be http(s), got %q", i, r.URL))
		}
	}
	return errors.Join(errs...)
}

// ParseRepository parses a command-line repository reference: a well-known id,
// "id=url" or a bare http(s) URL.
func ParseRepository(ref string) Repository {
	ref = strings.TrimSpace(ref)
	if id, url, ok := strings.Cut(ref, "="); ok {
		return Repository{ID: strings.TrimSpace(id), URL: strings.TrimSpace(url)}
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return Repository{URL: ref}
	}
	return Repository{ID: ref}
}

// RepositoryRefs returns the configured repositories in resolver form.
func (c *Config) RepositoryRefs() []string {
	refs := make([]string, 0, len(c.Repositories))
	for _, r := range c.Repositories {
		refs = append(refs, r.Ref())
	}
	return refs
}

func validFormat(f string) bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}
