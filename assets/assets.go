// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package assets ships the default locale catalogs inside the binary, so a
// host with no configured resource directory still has user-facing text.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed locales
var content embed.FS

// Locales returns the embedded catalog directory.
func Locales() fs.FS {
	sub, err := fs.Sub(content, "locales")
	if err != nil {
		// The subdirectory is embedded above; failure here is a build defect.
		panic(err)
	}

	return sub
}
