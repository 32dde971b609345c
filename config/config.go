// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/naoina/toml"
)

const (
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log format
	DefaultLogFormat = "console"
	// DefaultCacheSize is the default number of resolved types kept in the cache
	DefaultCacheSize = 10000
	// DefaultRPCHost is the default RPC host
	DefaultRPCHost = "localhost"
	// DefaultRPCPort is the default RPC HTTP port
	DefaultRPCPort = uint32(8545)
	// DefaultWSPort is the default RPC websocket port
	DefaultWSPort = uint32(8546)
	// DefaultMetricsAddress is the default metrics server address
	DefaultMetricsAddress = "localhost:9876"
	// DefaultRPCModules are the RPC modules enabled by default
	DefaultRPCModules = "overrides"
)

var (
	// defaultBasePath is the default directory holding chain definition files
	defaultBasePath = xdg.DataHome + "/chain-overrides"
	// defaultConfigPath is the default configuration file path
	defaultConfigPath = xdg.ConfigHome + "/chain-overrides/config.toml"
)

// Config is a collection of configurations throughout the system
type Config struct {
	BasePath string         `toml:"base-path" mapstructure:"base-path" validate:"required"`
	Log      LogConfig      `toml:"log" mapstructure:"log"`
	Registry RegistryConfig `toml:"registry" mapstructure:"registry"`
	RPC      RPCConfig      `toml:"rpc" mapstructure:"rpc"`
	Metrics  MetricsConfig  `toml:"metrics" mapstructure:"metrics"`
}

// LogConfig represents the log levels of the process and its packages
type LogConfig struct {
	Level     string `toml:"level" mapstructure:"level" validate:"required,loglevel"`
	Format    string `toml:"format" mapstructure:"format" validate:"required,oneof=console json"`
	Caller    bool   `toml:"caller" mapstructure:"caller"`
	Overrides string `toml:"overrides,omitempty" mapstructure:"overrides" validate:"omitempty,loglevel"`
	RPC       string `toml:"rpc,omitempty" mapstructure:"rpc" validate:"omitempty,loglevel"`
	Metrics   string `toml:"metrics,omitempty" mapstructure:"metrics" validate:"omitempty,loglevel"`
}

// RegistryConfig is the configuration of the chain override registry
type RegistryConfig struct {
	CacheSize int64         `toml:"cache-size" mapstructure:"cache-size" validate:"gte=0"`
	Builtin   bool          `toml:"builtin" mapstructure:"builtin"`
	Chains    []ChainConfig `toml:"chains,omitempty" mapstructure:"chains" validate:"unique=Name,dive"`
}

// ChainConfig points a chain name at its override document
type ChainConfig struct {
	Name string `toml:"name" mapstructure:"name" validate:"required"`
	Path string `toml:"path" mapstructure:"path" validate:"required"`
}

// RPCConfig is the configuration of the JSON-RPC server
type RPCConfig struct {
	Enabled  bool     `toml:"enabled" mapstructure:"enabled"`
	External bool     `toml:"external" mapstructure:"external"`
	Host     string   `toml:"host" mapstructure:"host" validate:"required_if=Enabled true"`
	Port     uint32   `toml:"port" mapstructure:"port" validate:"required_if=Enabled true,lte=65535"`
	WS       bool     `toml:"ws" mapstructure:"ws"`
	WSPort   uint32   `toml:"ws-port" mapstructure:"ws-port" validate:"required_if=WS true,lte=65535"`
	Modules  []string `toml:"modules,omitempty" mapstructure:"modules" validate:"dive,oneof=overrides rpc"`
}

// MetricsConfig is the configuration of the prometheus metrics server
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Address string `toml:"address" mapstructure:"address" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BasePath: defaultBasePath,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Registry: RegistryConfig{
			CacheSize: DefaultCacheSize,
			Builtin:   true,
		},
		RPC: RPCConfig{
			Enabled: true,
			Host:    DefaultRPCHost,
			Port:    DefaultRPCPort,
			WSPort:  DefaultWSPort,
			Modules: []string{DefaultRPCModules},
		},
		Metrics: MetricsConfig{
			Address: DefaultMetricsAddress,
		},
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return defaultConfigPath
}

// Load reads the toml configuration file at path on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	return config, nil
}

// Marshal encodes the configuration as toml
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(*c)
}

// Export writes the configuration to a toml file, creating parent directories
func (c *Config) Export(path string) error {
	raw, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ChainPath returns the absolute path of a chain document, relative
// paths being resolved against the base path
func (c *Config) ChainPath(chain ChainConfig) string {
	if filepath.IsAbs(chain.Path) {
		return chain.Path
	}
	return filepath.Join(c.BasePath, chain.Path)
}

// ValidateBasic performs basic validation of the configuration
func (c *Config) ValidateBasic() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
