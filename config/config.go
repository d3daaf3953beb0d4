package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration, loaded from YAML.
type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Logging LoggingConfig   `yaml:"logging"`
	Metrics MetricsConfig   `yaml:"metrics"`
	Indexes []IndexSettings `yaml:"indexes"` // Indexes created at startup
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	SyncAddLimit    int           `yaml:"syncAddLimit"` // Batches larger than this are indexed by a background job
	MaxJobWorkers   int           `yaml:"maxJobWorkers"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML configuration file, applies environment overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	seen := make(map[string]bool)
	for i := range c.Indexes {
		if problems := c.Indexes[i].Validate(); len(problems) > 0 {
			return fmt.Errorf("indexes[%d]: %v", i, problems)
		}
		if seen[c.Indexes[i].Name] {
			return fmt.Errorf("indexes[%d]: duplicate index name '%s'", i, c.Indexes[i].Name)
		}
		seen[c.Indexes[i].Name] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 32 << 20
	}
	if c.Server.SyncAddLimit == 0 {
		c.Server.SyncAddLimit = 1000
	}
	if c.Server.MaxJobWorkers == 0 {
		c.Server.MaxJobWorkers = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	for i := range c.Indexes {
		c.Indexes[i].ApplyDefaults()
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INSTANT_SEARCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("INSTANT_SEARCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INSTANT_SEARCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
