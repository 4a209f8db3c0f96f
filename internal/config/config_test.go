package config

import (
	"testing"
	"time"
)

func TestLoadSuccess(t *testing.T) {
	t.Setenv("EDUPAGE_BRIDGE_SUBDOMAIN", "demo")
	t.Setenv("EDUPAGE_BRIDGE_CLASS_ID", "5A")
	t.Setenv("EDUPAGE_BRIDGE_SCHOOL_YEAR", "2026")
	t.Setenv("EDUPAGE_BRIDGE_REQUEST_TIMEOUT", "5s")
	t.Setenv("EDUPAGE_BRIDGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Subdomain != "demo" || cfg.ClassID != "5A" {
		t.Fatalf("unexpected target: %+v", cfg)
	}
	if cfg.SchoolYear != 2026 {
		t.Fatalf("school year = %d", cfg.SchoolYear)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EDUPAGE_BRIDGE_SUBDOMAIN", "demo")
	t.Setenv("EDUPAGE_BRIDGE_CLASS_ID", "5A")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SchoolYear != time.Now().Year() {
		t.Fatalf("default school year = %d", cfg.SchoolYear)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("default timeout = %v", cfg.RequestTimeout)
	}
	if cfg.BindAddress == "" {
		t.Fatal("expected default bind address")
	}
	if cfg.RequireToken {
		t.Fatal("token auth should default off")
	}
}

func TestLoadMissingTarget(t *testing.T) {
	t.Setenv("EDUPAGE_BRIDGE_SUBDOMAIN", "")
	t.Setenv("EDUPAGE_BRIDGE_CLASS_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without subdomain/class id")
	}
}

func TestValidateErrors(t *testing.T) {
	valid := Config{
		Subdomain:      "demo",
		ClassID:        "5A",
		SchoolYear:     2026,
		BindAddress:    "127.0.0.1:1",
		RequestTimeout: time.Second,
		LogLevel:       "info",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	mutations := []func(*Config){
		func(c *Config) { c.Subdomain = "" },
		func(c *Config) { c.ClassID = "" },
		func(c *Config) { c.SchoolYear = 1970 },
		func(c *Config) { c.BindAddress = "" },
		func(c *Config) { c.RequireToken = true },
		func(c *Config) { c.RequestTimeout = -time.Second },
		func(c *Config) { c.LogLevel = "trace" },
	}
	for i, mutate := range mutations {
		c := valid
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}
