package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Discovery.MaxPerCategory != 20 {
		t.Errorf("discovery.max_per_category = %d, want 20", cfg.Discovery.MaxPerCategory)
	}
	if !strings.HasPrefix(cfg.Crawler.UserAgent, "siteforge-bot/") {
		t.Errorf("unexpected default user agent %q", cfg.Crawler.UserAgent)
	}
	if cfg.FetchTimeout() != 10*time.Second {
		t.Errorf("FetchTimeout() = %v, want 10s", cfg.FetchTimeout())
	}
	if cfg.ProbeTimeout() != 3*time.Second {
		t.Errorf("ProbeTimeout() = %v, want 3s", cfg.ProbeTimeout())
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
crawler:
  user_agent: custom-agent/2.0
  timeout_seconds: 20
  probe_timeout_ms: 1500
discovery:
  max_per_category: 10
  max_service_links: 15
  max_sections: 25
pipeline:
  output_dir: builds
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Crawler.UserAgent != "custom-agent/2.0" {
		t.Errorf("crawler.user_agent = %q", cfg.Crawler.UserAgent)
	}
	if cfg.Discovery.MaxPerCategory != 10 {
		t.Errorf("discovery.max_per_category = %d, want 10", cfg.Discovery.MaxPerCategory)
	}
	if cfg.Pipeline.OutputDir != "builds" {
		t.Errorf("pipeline.output_dir = %q, want builds", cfg.Pipeline.OutputDir)
	}
	if cfg.Logging.Development {
		t.Error("logging.development should be false")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"zero timeout", func(c *Config) { c.Crawler.TimeoutSeconds = 0 }},
		{"empty user agent", func(c *Config) { c.Crawler.UserAgent = "" }},
		{"zero category cap", func(c *Config) { c.Discovery.MaxPerCategory = 0 }},
		{"empty output dir", func(c *Config) { c.Pipeline.OutputDir = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should have failed")
			}
		})
	}
}
