package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Subdomain      string
	ClassID        string
	SchoolYear     int
	BindAddress    string
	UnixSocketPath string
	RequireToken   bool
	FeedToken      string
	RequestTimeout time.Duration
	LogLevel       string
}

// Load reads configuration from EDUPAGE_BRIDGE_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EDUPAGE_BRIDGE")
	v.AutomaticEnv()

	v.SetDefault("subdomain", "")
	v.SetDefault("class_id", "")
	v.SetDefault("school_year", time.Now().Year())
	v.SetDefault("bind_address", "127.0.0.1:9321")
	v.SetDefault("unix_socket", "")
	v.SetDefault("require_token", false)
	v.SetDefault("feed_token", "")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("log_level", "info")

	cfg := Config{
		Subdomain:      strings.TrimSpace(v.GetString("subdomain")),
		ClassID:        strings.TrimSpace(v.GetString("class_id")),
		SchoolYear:     v.GetInt("school_year"),
		BindAddress:    strings.TrimSpace(v.GetString("bind_address")),
		UnixSocketPath: strings.TrimSpace(v.GetString("unix_socket")),
		RequireToken:   v.GetBool("require_token"),
		FeedToken:      strings.TrimSpace(v.GetString("feed_token")),
		RequestTimeout: v.GetDuration("request_timeout"),
		LogLevel:       strings.TrimSpace(v.GetString("log_level")),
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Subdomain == "" {
		return errors.New("EDUPAGE_BRIDGE_SUBDOMAIN is required")
	}
	if c.ClassID == "" {
		return errors.New("EDUPAGE_BRIDGE_CLASS_ID is required")
	}
	if c.SchoolYear < 2000 || c.SchoolYear > 2200 {
		return fmt.Errorf("implausible school year: %d", c.SchoolYear)
	}
	if c.BindAddress == "" && c.UnixSocketPath == "" {
		return errors.New("either bind address or unix socket path must be configured")
	}
	if c.RequireToken && c.FeedToken == "" {
		return errors.New("EDUPAGE_BRIDGE_FEED_TOKEN is required when token auth is enabled")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}
