// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog parses line-oriented message resource files into immutable
key-to-template catalogs and expands positional placeholders at read time.

# Resource format

Catalogs are UTF-8 text, one entry per line:

	## Section headers are ordinary comments.
	gen_loc_accept = Accept
	files_imported = Files to import: {}.
	tips_startup = The editor keeps backups of every PackFile you open.
	    Disable this in the settings if your mods are very large.

A line starting with '#' is a comment. A line starting with whitespace
continues the previous entry's value, joined with a newline. '{}' marks a
positional placeholder; doubled braces '{{' and '}}' produce literal braces.

# Degradation

Parsing never fails on a malformed line and formatting never fails on an
argument mismatch; both collect [Warning] values and produce best-effort
output, because a broken tooltip must not take the host UI down with it.
*/
package catalog
