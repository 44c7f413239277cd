// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config

	cfg.SetDefaults()

	assert.Equal(t, "en", cfg.Locale.Fallback)
	assert.Equal(t, "en", cfg.Locale.Active)
	assert.Empty(t, cfg.Locale.Dir)
	assert.False(t, cfg.Locale.StrictMissingKeys)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

// TestReadEnv verifies environment overrides without going through the
// flag-parsing path of LoadConfig.
func TestReadEnv(t *testing.T) {
	t.Setenv("LOCTOOL_LOCALE", "es")
	t.Setenv("LOCTOOL_STRICT_MISSING_KEYS", "true")
	t.Setenv("LOCTOOL_LOG_OUTPUTS", "/dev/stderr, /tmp/loctool.log")

	var cfg Config

	cfg.SetDefaults()
	require.NoError(t, readEnv(&cfg))

	assert.Equal(t, "es", cfg.Locale.Active)
	assert.True(t, cfg.Locale.StrictMissingKeys)
	assert.Equal(t, []string{"/dev/stderr", "/tmp/loctool.log"}, cfg.Log.Outputs)

	// Untouched fields keep their defaults.
	assert.Equal(t, "en", cfg.Locale.Fallback)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "Underscore locale spelling accepted",
			mutate: func(cfg *Config) { cfg.Locale.Active = "pt_BR" },
		},
		{
			name:    "Bad log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "Bad log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "Empty fallback locale",
			mutate:  func(cfg *Config) { cfg.Locale.Fallback = "" },
			wantErr: true,
		},
		{
			name:    "Garbage active locale",
			mutate:  func(cfg *Config) { cfg.Locale.Active = "no yes!" },
			wantErr: true,
		},
		{
			name:    "Missing locale directory",
			mutate:  func(cfg *Config) { cfg.Locale.Dir = "/nonexistent/locales" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg Config

			cfg.SetDefaults()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
