// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads the CLI configuration. Values come from a YAML config
// file discovered by viper (or passed explicitly), overridable through
// KEYSET_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultStorageBackend = "file"
	DefaultStoragePath    = "~/.keyset/store"
	DefaultOutputFormat   = "text"
)

// Config is the complete tool configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// StorageConfig selects where keysets are persisted.
type StorageConfig struct {
	// Backend is the storage backend: "memory" or "file".
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Path is the root directory for the file backend.
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// OutputConfig controls CLI output rendering.
type OutputConfig struct {
	// Format is the default output format: "text", "json" or "yaml".
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads the configuration. If configFile is empty, viper searches
// $HOME/.keyset and the working directory for keyset.yaml. A missing config
// file is not an error; defaults apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("storage.backend", DefaultStorageBackend)
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("logging.debug", false)
	v.SetDefault("output.format", DefaultOutputFormat)

	v.SetEnvPrefix("KEYSET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("keyset")
		v.AddConfigPath("$HOME/.keyset")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "file":
	default:
		return fmt.Errorf("config: unsupported storage backend %q", c.Storage.Backend)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("config: unsupported output format %q", c.Output.Format)
	}
	return nil
}
