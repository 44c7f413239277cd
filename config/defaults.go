// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Locale.Dir = ""
	cfg.Locale.Active = "en"
	cfg.Locale.Fallback = "en"
	cfg.Locale.StrictMissingKeys = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
