// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"sort"
)

// Catalog is the set of key-to-template mappings for one locale.
//
// A Catalog is immutable after construction and therefore safe for
// concurrent use by any number of readers without locking.
type Catalog struct {
	entries map[string]string
}

// New builds a Catalog from an already-assembled entry map.
// The map is copied; later mutation of m does not affect the Catalog.
func New(m map[string]string) *Catalog {
	entries := make(map[string]string, len(m))
	for k, v := range m {
		entries[k] = v
	}

	return &Catalog{entries: entries}
}

// Lookup returns the raw template stored for key. Placeholders and brace
// escapes are not expanded; use [Expand] for that.
func (c *Catalog) Lookup(key string) (string, bool) {
	template, ok := c.entries[key]

	return template, ok
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns a sorted copy of all entry keys. The slice is safe to retain.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Warning describes a recoverable defect found while parsing a resource or
// expanding a template. Warnings are collected, never raised as errors.
type Warning struct {
	// Line is the 1-based resource line, or 0 for format-time warnings.
	Line int

	// Key is the entry the warning belongs to, when one is known.
	Key string

	// Text is the offending raw line or template.
	Text string

	// Msg describes the defect.
	Msg string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", w.Line, w.Msg, w.Text)
	}

	return fmt.Sprintf("%s: %q", w.Msg, w.Text)
}
