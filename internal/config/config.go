// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fernweh-labs/consentgate/internal/consent"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Poll    PollConfig    `mapstructure:"poll" yaml:"poll"`
	Suite   SuiteConfig   `mapstructure:"suite" yaml:"suite"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig holds settings for the headless browser instance.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	IgnoreTLSErrors   bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	Args              []string      `mapstructure:"args" yaml:"args"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	BannerTimeout     time.Duration `mapstructure:"banner_timeout" yaml:"banner_timeout"`
}

// PollConfig tunes the consent-commit polling loop.
type PollConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Interval    time.Duration `mapstructure:"interval" yaml:"interval"`
}

// SuiteConfig selects what the run command executes.
type SuiteConfig struct {
	// TargetURL is the booking site page carrying the consent banner.
	TargetURL string `mapstructure:"target_url" yaml:"target_url"`
	// Environments limits the run to the listed profiles; empty means all
	// default profiles.
	Environments []string `mapstructure:"environments" yaml:"environments"`
	// Scenarios limits the run to the listed scenario names; empty means all
	// built-in scenarios.
	Scenarios []string `mapstructure:"scenarios" yaml:"scenarios"`
	// Concurrency caps how many environment profiles run at once.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	// Expectations overrides or extends the built-in per-environment
	// expected-cookie table.
	Expectations map[string]consent.Expectation `mapstructure:"expectations" yaml:"expectations"`
}

// ReportConfig controls where the run report goes.
type ReportConfig struct {
	// Output is a file path, or empty/"stdout" for standard output.
	Output string `mapstructure:"output" yaml:"output"`
}

// NewDefaultConfig returns a config populated with production defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "consentgate",
			MaxSize:     50,
			MaxBackups:  3,
			MaxAge:      14,
			Colors: ColorConfig{
				Debug: "cyan",
				Info:  "green",
				Warn:  "yellow",
				Error: "red",
			},
		},
		Browser: BrowserConfig{
			Headless:          true,
			NavigationTimeout: 45 * time.Second,
			BannerTimeout:     15 * time.Second,
		},
		Poll: PollConfig{
			MaxAttempts: consent.DefaultMaxAttempts,
			Interval:    consent.DefaultPollInterval,
		},
		Suite: SuiteConfig{
			TargetURL:   "https://www.fernweh.travel",
			Concurrency: 2,
		},
	}
}

// Load reads config.yaml (or the explicit file) and CONSENTGATE_* environment
// variables on top of the defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CONSENTGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars.
	}

	cfg := NewDefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs cross-field sanity checks before the suite starts.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Suite.TargetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("suite.target_url must be an absolute URL, got %q", c.Suite.TargetURL)
	}
	if c.Poll.MaxAttempts < 0 {
		return fmt.Errorf("poll.max_attempts must not be negative")
	}
	if c.Poll.Interval < 0 {
		return fmt.Errorf("poll.interval must not be negative")
	}
	if c.Suite.Concurrency < 1 {
		return fmt.Errorf("suite.concurrency must be a positive integer")
	}
	for env, exp := range c.Suite.Expectations {
		if len(exp.Required) == 0 {
			return fmt.Errorf("suite.expectations.%s must list at least one required cookie", env)
		}
	}
	return nil
}
