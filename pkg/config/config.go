// Package config loads golite settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path
const EnvVar = "GOLITE_CONFIG"

// Config holds all golite settings
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// ParserConfig limits a single parse
type ParserConfig struct {
	MaxDepth  int `toml:"max_depth" yaml:"max_depth"`
	MaxErrors int `toml:"max_errors" yaml:"max_errors"` // 0 means unlimited
}

// LogConfig selects log level and an optional JSON log file
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// ServerConfig configures the parse service
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Duration wraps time.Duration for text-based config formats
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file. The format follows the extension:
// .yaml and .yml are YAML, everything else TOML. Missing values get
// defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by GOLITE_CONFIG, or returns the
// defaults when it is unset.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Parser
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 512
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5159
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if c.Parser.MaxErrors < 0 {
		return fmt.Errorf("parser.max_errors must not be negative, got %d", c.Parser.MaxErrors)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative, got %d", c.Server.MaxBodyBytes)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
