// Package config loads the bridge configuration with the usual
// precedence: built-in defaults, then the config file, then environment
// overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation
const (
	DefaultBind         = "127.0.0.1:8090"
	DefaultMaxBodyBytes = 4 << 20
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultRootName     = "Assets"
	DefaultRootDir      = "./Assets"
	DefaultPipeline     = "universal"
	DefaultLogLevel     = "info"
)

// Config is the complete bridge configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Assets    AssetsConfig    `yaml:"assets"`
	Rendering RenderingConfig `yaml:"rendering"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Bind         string        `yaml:"bind"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AssetsConfig locates the project asset root.
type AssetsConfig struct {
	// RootName is the logical prefix every asset path carries.
	RootName string `yaml:"root_name"`
	// RootDir is the directory backing the asset root.
	RootDir string `yaml:"root_dir"`
	// Watch enables filesystem change notifications to connected
	// controllers.
	Watch bool `yaml:"watch"`
}

// RenderingConfig selects the project's render pipeline, which decides
// the shader and property keys of newly created materials.
type RenderingConfig struct {
	Pipeline string `yaml:"pipeline"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Bind:         DefaultBind,
			MaxBodyBytes: DefaultMaxBodyBytes,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Assets: AssetsConfig{
			RootName: DefaultRootName,
			RootDir:  DefaultRootDir,
			Watch:    true,
		},
		Rendering: RenderingConfig{
			Pipeline: DefaultPipeline,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the default config file location when present, then applies
// environment overrides.
func Load() (*Config, error) {
	return LoadFromPath("forgebridge.yaml")
}

// LoadFromPath loads configuration from a specific file path. A missing
// file is not an error; defaults and environment still apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORGEBRIDGE_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("FORGEBRIDGE_ASSET_ROOT"); v != "" {
		cfg.Assets.RootDir = v
	}
	if v := os.Getenv("FORGEBRIDGE_PIPELINE"); v != "" {
		cfg.Rendering.Pipeline = v
	}
	if v := os.Getenv("FORGEBRIDGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FORGEBRIDGE_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Assets.Watch = b
		}
	}
}

// Validate rejects configurations the bridge cannot start with.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("invalid server.bind %q: %w", c.Server.Bind, err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be >= 0")
	}
	if strings.TrimSpace(c.Assets.RootName) == "" {
		return fmt.Errorf("assets.root_name cannot be empty")
	}
	if strings.Contains(c.Assets.RootName, "/") || strings.Contains(c.Assets.RootName, "\\") {
		return fmt.Errorf("assets.root_name must be a single path segment: %s", c.Assets.RootName)
	}
	if strings.TrimSpace(c.Assets.RootDir) == "" {
		return fmt.Errorf("assets.root_dir cannot be empty")
	}

	validPipelines := map[string]bool{
		"legacy": true, "builtin": true, "standard": true,
		"universal": true, "urp": true,
		"highdefinition": true, "high-definition": true, "hdrp": true,
	}
	if !validPipelines[strings.ToLower(c.Rendering.Pipeline)] {
		return fmt.Errorf("invalid rendering.pipeline: %s (valid: legacy, universal, highdefinition)",
			c.Rendering.Pipeline)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging.level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
