// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

func (cfg *Config) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting loctool")

	configYAML, err := yaml.Marshal(*cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().
		Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
