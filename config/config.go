// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the application configuration from defaults, a YAML
// file, a .env file, and the environment, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
)

// Global exposes the application configuration.
var Global Config

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Locale struct {
		// Dir is the catalog directory; empty means the embedded catalogs.
		Dir      string `env:"LOCTOOL_LOCALE_DIR,overwrite"      yaml:"dir"`
		Active   string `env:"LOCTOOL_LOCALE,overwrite"          yaml:"active"`
		Fallback string `env:"LOCTOOL_FALLBACK_LOCALE,overwrite" yaml:"fallback"`

		// StrictMissingKeys renders missing keys as "⟦key⟧" so translators
		// can spot gaps in a running host.
		StrictMissingKeys bool `env:"LOCTOOL_STRICT_MISSING_KEYS,overwrite" yaml:"strictMissingKeys"`
	} `yaml:"locale"`

	Log struct {
		Level   string   `env:"LOCTOOL_LOG_LEVEL,overwrite"   yaml:"level"`
		Format  string   `env:"LOCTOOL_LOG_FORMAT,overwrite"  yaml:"format"`
		Outputs []string `env:"LOCTOOL_LOG_OUTPUTS,overwrite" yaml:"outputs"`
	} `yaml:"log"`
}

// LoadConfig populates cfg from every configuration source and applies the
// logging settings. Precedence, lowest to highest: defaults, YAML file,
// .env file, environment variables.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (LOCTOOL_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("LOCTOOL_CONFIGFILE"); envVar != "" {
		configFilePath = envVar
	} else {
		configFilePath = parsedConfigFlagValue
		// Fallback check for the ".yml" spelling.
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()
	cfg.print()

	return nil
}
