// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

// logMissingOnce logs a missing-key warning once per (locale, key) pair.
// Every render of a stale view would otherwise repeat the same warning.
func (r *Registry) logMissingOnce(locale, key string) {
	id := locale + "\x00" + key
	if _, loaded := r.missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		r.logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing translation")
	}
}

// logArgMismatchOnce logs a placeholder/argument mismatch once per
// (locale, key) pair. A stale translation rendered in a hot loop would
// otherwise flood the log.
func (r *Registry) logArgMismatchOnce(locale, key, msg string) {
	id := locale + "\x00" + key
	if _, loaded := r.argMismatchOnce.LoadOrStore(id, struct{}{}); !loaded {
		r.logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg(msg)
	}
}
