// Package config loads the engine's YAML configuration and applies
// environment-variable overrides, grounded on the teacher's
// internal/unified-config/loader.go Load/overrideWithEnv/validate shape.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Chain      ChainConfig      `yaml:"chain"`
	Alert      AlertConfig      `yaml:"alert"`
	Repository RepositoryConfig `yaml:"repository"`
	Watchlist  []string         `yaml:"watchlist"`
	WatchETFs  []string         `yaml:"watch_etfs"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RepositoryConfig selects the SignalRepository implementation a
// cmd entrypoint wires. "memory" (default) never persists across
// restarts; "journal_file" appends to Path.
type RepositoryConfig struct {
	Kind string `yaml:"kind"` // "memory" or "journal_file"
	Path string `yaml:"path"`
}

// ServerConfig configures the operational HTTP surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig configures zap's production/development mode and level.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// AlertConfig gates the notification sink. Mirrors
// original_source/backend/signal/sender.py's
// create_sender_from_config's `config.alert.enabled` check.
type AlertConfig struct {
	Enabled bool   `yaml:"enabled"`
	Sink    string `yaml:"sink"` // "log", "null", or "bus"
}

// ChainConfig is the declarative strategy-chain wiring record from spec
// §6: registered plugin names plus their forwarded constructor configs.
type ChainConfig struct {
	EventDetector  string                    `yaml:"event_detector"`
	FundSelector   string                    `yaml:"fund_selector"`
	SignalFilters  []string                  `yaml:"signal_filters"`
	EventConfig    map[string]any            `yaml:"event_config"`
	FundConfig     map[string]any            `yaml:"fund_config"`
	FilterConfigs  map[string]map[string]any `yaml:"filter_configs"`
	EvaluatorType  string                    `yaml:"evaluator_type"`
}

// DefaultChainConfig mirrors spec §6's default filter ordering.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		SignalFilters: []string{"time_filter", "liquidity_filter"},
		EvaluatorType: "default",
	}
}

// ToMap renders cfg as a plain map via a YAML round trip through its own
// tags, so ChainConfigFromMap(cfg.ToMap()) reproduces cfg.
func (c ChainConfig) ToMap() (map[string]any, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("chain config to map: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("chain config to map: %w", err)
	}
	return m, nil
}

// ChainConfigFromMap is the inverse of ChainConfig.ToMap.
func ChainConfigFromMap(m map[string]any) (ChainConfig, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return ChainConfig{}, fmt.Errorf("chain config from map: %w", err)
	}
	var cfg ChainConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return ChainConfig{}, fmt.Errorf("chain config from map: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with the teacher-style zero-config defaults:
// a "balanced" chain, alerts enabled via the log sink.
func Default() *Config {
	return &Config{
		Server:     ServerConfig{Host: "0.0.0.0", Port: 8080},
		Chain:      DefaultChainConfig(),
		Alert:      AlertConfig{Enabled: true, Sink: "log"},
		Repository: RepositoryConfig{Kind: "memory"},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Load reads configPath (or ARBSCAN_CONFIG_PATH, or "config/arbscan.yaml"
// when both are empty), applies environment overrides, and validates the
// result.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("ARBSCAN_CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "config/arbscan.yaml"
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			overrideWithEnv(cfg)
			if verr := validate(cfg); verr != nil {
				return nil, verr
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	overrideWithEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func overrideWithEnv(cfg *Config) {
	if port := os.Getenv("ARBSCAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("ARBSCAN_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if level := os.Getenv("ARBSCAN_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if detector := os.Getenv("ARBSCAN_EVENT_DETECTOR"); detector != "" {
		cfg.Chain.EventDetector = detector
	}
	if selector := os.Getenv("ARBSCAN_FUND_SELECTOR"); selector != "" {
		cfg.Chain.FundSelector = selector
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1,65535]", cfg.Server.Port)
	}
	switch cfg.Alert.Sink {
	case "", "log", "null", "bus":
	default:
		return fmt.Errorf("alert.sink %q must be one of log, null, bus", cfg.Alert.Sink)
	}
	switch cfg.Repository.Kind {
	case "", "memory", "journal_file":
	default:
		return fmt.Errorf("repository.kind %q must be one of memory, journal_file", cfg.Repository.Kind)
	}
	if cfg.Repository.Kind == "journal_file" && cfg.Repository.Path == "" {
		return fmt.Errorf("repository.path is required when repository.kind is journal_file")
	}
	return nil
}
