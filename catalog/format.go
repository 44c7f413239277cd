// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"strings"
)

// Expand substitutes positional arguments into template.
//
// Placeholders ('{}') consume arguments left to right. Doubled braces
// ('{{', '}}') render as literal braces and never count as placeholders;
// any other stray brace passes through verbatim. If the template has more
// placeholders than arguments, the unmatched placeholders render empty and
// a single warning is returned. Extra arguments are ignored.
//
// Expand is pure and cannot fail; at worst it returns warnings alongside a
// best-effort string.
func Expand(template string, args ...string) (string, []Warning) {
	if !strings.ContainsAny(template, "{}") {
		return template, nil
	}

	var b strings.Builder

	b.Grow(len(template))

	used := 0

	for i := 0; i < len(template); {
		switch {
		case strings.HasPrefix(template[i:], "{{"):
			b.WriteByte('{')

			i += 2
		case strings.HasPrefix(template[i:], "}}"):
			b.WriteByte('}')

			i += 2
		case strings.HasPrefix(template[i:], "{}"):
			if used < len(args) {
				b.WriteString(args[used])
			}

			used++
			i += 2
		default:
			b.WriteByte(template[i])
			i++
		}
	}

	var warnings []Warning

	if used > len(args) {
		warnings = append(warnings, Warning{
			Text: template,
			Msg:  fmt.Sprintf("template has %d placeholders but only %d arguments", used, len(args)),
		})
	}

	return b.String(), warnings
}

// Placeholders counts the positional placeholders in template, honoring
// brace escapes. loccheck uses it to flag arity drift between a base
// template and its translations.
func Placeholders(template string) int {
	count := 0

	for i := 0; i < len(template); {
		switch {
		case strings.HasPrefix(template[i:], "{{"), strings.HasPrefix(template[i:], "}}"):
			i += 2
		case strings.HasPrefix(template[i:], "{}"):
			count++
			i += 2
		default:
			i++
		}
	}

	return count
}
