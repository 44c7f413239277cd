// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errInvalidLogLevel     = errors.New("invalid Log.Level value")
	errInvalidLogFormat    = errors.New("invalid Log.Format value")
	errEmptyFallbackLocale = errors.New("Locale.Fallback cannot be empty")
	errLocaleDirNotFound   = errors.New("Locale.Dir does not exist or is not a directory")
)

// validate checks the configuration for values that would misconfigure the
// registry or the logger.
func (cfg *Config) validate() error {
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.Locale.Fallback == "" {
		return errEmptyFallbackLocale
	}

	if _, err := language.Parse(bcp47(cfg.Locale.Fallback)); err != nil {
		return fmt.Errorf("invalid Locale.Fallback %q: %w", cfg.Locale.Fallback, err)
	}

	if cfg.Locale.Active != "" {
		if _, err := language.Parse(bcp47(cfg.Locale.Active)); err != nil {
			return fmt.Errorf("invalid Locale.Active %q: %w", cfg.Locale.Active, err)
		}
	}

	if cfg.Locale.Dir != "" {
		info, err := os.Stat(cfg.Locale.Dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %q", errLocaleDirNotFound, cfg.Locale.Dir)
		}
	}

	return nil
}

// bcp47 accepts the underscore spelling ("pt_BR") used by catalog file names.
func bcp47(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}
