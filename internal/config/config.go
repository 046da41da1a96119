// Package config loads and validates siteforge configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls the status HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CrawlerConfig governs outbound fetch behavior.
type CrawlerConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	ProbeTimeoutMs int    `mapstructure:"probe_timeout_ms"`
}

// DiscoveryConfig bounds the discovery engine.
type DiscoveryConfig struct {
	MaxPerCategory int `mapstructure:"max_per_category"`
	MaxServiceCap  int `mapstructure:"max_service_links"`
	MaxSections    int `mapstructure:"max_sections"`
}

// PipelineConfig sets the project output root.
type PipelineConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("crawler.user_agent", "siteforge-bot/1.0 (+https://siteforge.dev)")
	v.SetDefault("crawler.timeout_seconds", 10)
	v.SetDefault("crawler.probe_timeout_ms", 3000)
	v.SetDefault("discovery.max_per_category", 20)
	v.SetDefault("discovery.max_service_links", 30)
	v.SetDefault("discovery.max_sections", 50)
	v.SetDefault("pipeline.output_dir", "output")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Discovery.MaxPerCategory <= 0 {
		return fmt.Errorf("discovery.max_per_category must be > 0")
	}
	if c.Pipeline.OutputDir == "" {
		return fmt.Errorf("pipeline.output_dir must be set")
	}
	return nil
}

// FetchTimeout converts the crawler timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}

// ProbeTimeout is the shorter deadline used for HEAD existence checks.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Crawler.ProbeTimeoutMs) * time.Millisecond
}
