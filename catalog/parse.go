// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single resource line. Tooltips are long, but nothing
// legitimate approaches this.
const maxLineSize = 1 << 20

// Parse reads a resource file into a Catalog.
//
// Malformed lines and duplicate keys are reported as warnings and never
// abort the load; the returned error is reserved for read failures.
func Parse(r io.Reader) (*Catalog, []Warning, error) {
	entries := make(map[string]string)

	var (
		warnings []Warning
		lastKey  string
		lineNo   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case strings.TrimSpace(line) == "":
			// Blank lines separate entries; they also end a multi-line value.
			lastKey = ""

		case strings.HasPrefix(line, "#"):
			// Comments carry section headers only; they are not structure.
			lastKey = ""

		case line[0] == ' ' || line[0] == '\t':
			if lastKey == "" {
				warnings = append(warnings, Warning{
					Line: lineNo,
					Text: line,
					Msg:  "continuation line without a preceding entry",
				})

				continue
			}

			entries[lastKey] += "\n" + strings.TrimLeft(line, " \t")

		default:
			key, value, ok := splitEntry(line)
			if !ok {
				warnings = append(warnings, Warning{
					Line: lineNo,
					Text: line,
					Msg:  "line is not blank, comment, entry, or continuation",
				})

				lastKey = ""

				continue
			}

			if _, dup := entries[key]; dup {
				warnings = append(warnings, Warning{
					Line: lineNo,
					Key:  key,
					Text: line,
					Msg:  "duplicate key, keeping the newest value",
				})
			}

			entries[key] = value
			lastKey = key
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("failed to read resource: %w", err)
	}

	return &Catalog{entries: entries}, warnings, nil
}

// ParseString is a convenience wrapper for parsing in-memory text.
func ParseString(s string) (*Catalog, []Warning) {
	c, warnings, _ := Parse(strings.NewReader(s))

	return c, warnings
}

// splitEntry splits a "key = value" line. The key is the contiguous token
// before the first '='; the value keeps everything after it, trimmed of at
// most one leading space so "key = value" and "key =value" store the same
// text.
func splitEntry(line string) (key, value string, ok bool) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", false
	}

	key = strings.TrimRight(line[:eq], " \t")
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	value = strings.TrimPrefix(line[eq+1:], " ")

	return key, value, true
}
