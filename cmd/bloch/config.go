// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config file location, overridable with BLOCH_CONFIG.
const (
	configDirName  = ".blochsim"
	configFileName = "config.yaml"
)

// ServiceConfig holds the listen address used by `bloch serve`.
type ServiceConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the persistent CLI configuration at ~/.blochsim/config.yaml.
//
// Evaluation commands (run, batch, watch, repl) read the history fields
// to configure engine state retention; rendering commands read Format
// and NoColor.
type Config struct {
	// Format selects the default output rendering: "table" or "json".
	Format string `yaml:"format"`

	// NoColor disables styled output even on a terminal.
	NoColor bool `yaml:"no_color"`

	// History selects state history retention: "all", "none", or "bounded".
	History string `yaml:"history"`

	// HistoryLimit is the snapshot count kept under bounded retention.
	HistoryLimit int `yaml:"history_limit"`

	// Service is the listen address for `bloch serve`.
	Service ServiceConfig `yaml:"service"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Format:       "table",
		NoColor:      false,
		History:      "all",
		HistoryLimit: 64,
		Service: ServiceConfig{
			Host: "0.0.0.0",
			Port: 12240,
		},
	}
}

// ConfigPath returns the config file location.
//
// The BLOCH_CONFIG environment variable takes precedence; otherwise the
// file lives at ~/.blochsim/config.yaml. Falls back to a relative path
// when the home directory cannot be resolved.
func ConfigPath() string {
	if env := os.Getenv("BLOCH_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, configFileName)
	}
	return filepath.Join(home, configDirName, configFileName)
}

// LoadConfig reads and parses the config file at path.
//
// A missing file is not an error: defaults are returned so every command
// works before `bloch init` has ever run. A file that exists but does
// not parse is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path, creating the directory if needed.
func WriteConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Global singleton for convenience
var (
	globalConfig     Config
	globalConfigErr  error
	globalConfigOnce sync.Once
)

// GetConfig returns the lazily-loaded global configuration.
//
// The config file is read at most once per process. A file that fails
// to parse yields defaults; the error is retained and reported by
// ConfigLoadErr so commands can warn without refusing to run.
func GetConfig() Config {
	globalConfigOnce.Do(func() {
		globalConfig, globalConfigErr = LoadConfig(ConfigPath())
	})
	return globalConfig
}

// ConfigLoadErr reports the error, if any, from the global config load.
func ConfigLoadErr() error {
	return globalConfigErr
}
