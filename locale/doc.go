// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package locale resolves message keys to user-facing text across locales.

A [Registry] owns the catalogs of every available locale, knows which one is
active, and falls back to a designated base locale for keys the active
catalog lacks. A key missing from every catalog resolves to the key itself,
so the host UI shows "some_missing_key" instead of a blank label.

The registry is built once by the host's composition root and handed to
every consumer:

	reg, err := locale.New(locale.Options{Fallback: "en", Active: "es"})
	...
	label := reg.Resolve("gen_loc_accept")
	status := reg.ResolveWithArgs("files_imported", strconv.Itoa(n))

Lookups are lock-free: registry state is an immutable snapshot behind an
atomic pointer, and SetActive swaps the whole snapshot so a reader sees
either the old locale or the new one, never a mix.

Locale identifiers are BCP 47 tags. File names may use underscores
("pt_BR.ftl"); they are canonicalised on load, and requesting "es-MX" finds
an "es" catalog through language matching.
*/
package locale
