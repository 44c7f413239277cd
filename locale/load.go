// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"codeberg.org/loctool/loctool/catalog"
)

// Catalog file extensions. A ".ftl.zst" catalog is decompressed
// transparently so locale resources can ship compressed inside archives.
const (
	catalogExt           = ".ftl"
	catalogCompressedExt = ".ftl.zst"
)

// scanLocales lists the catalog files under the resource root, keyed by
// canonical locale tag. Files with unparseable locale names are skipped
// with a warning. When both plain and compressed catalogs exist for a
// locale, the plain one wins.
func scanLocales(fsys fs.FS, logger zerolog.Logger) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory: %w", err)
	}

	files := make(map[string]string, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}

		var id string

		switch {
		case strings.HasSuffix(name, catalogCompressedExt):
			id = strings.TrimSuffix(name, catalogCompressedExt)
		case strings.HasSuffix(name, catalogExt):
			id = strings.TrimSuffix(name, catalogExt)
		default:
			continue
		}

		t, err := parseTag(id)
		if err != nil {
			logger.Warn().Str("file", name).Msg("Skipping catalog with invalid locale name")

			continue
		}

		canonical := t.String()

		if existing, ok := files[canonical]; ok && !strings.HasSuffix(existing, catalogCompressedExt) {
			continue
		}

		files[canonical] = name
	}

	return files, nil
}

// Scan lists the catalogs available under a resource root, keyed by
// canonical locale tag. cmd/loccheck uses it to audit a catalog directory
// without building a Registry.
func Scan(fsys fs.FS) (map[string]string, error) {
	return scanLocales(fsys, zerolog.Nop())
}

// ReadFile parses one catalog file, decompressing ".zst" resources
// transparently. Parse warnings are returned to the caller; only I/O and
// decompression problems are errors.
func ReadFile(fsys fs.FS, name string) (*catalog.Catalog, []catalog.Warning, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog %s: %w", name, err)
	}
	defer f.Close()

	var r io.Reader = f

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decompress catalog %s: %w", name, err)
		}
		defer dec.Close()

		r = dec
	}

	c, warnings, err := catalog.Parse(r)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}

	return c, warnings, nil
}

// readCatalog loads one locale's catalog and logs its parse warnings.
func (r *Registry) readCatalog(tag, name string) (*catalog.Catalog, error) {
	c, warnings, err := ReadFile(r.fsys, name)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		r.logger.Warn().
			Str("locale", tag).
			Str("file", name).
			Int("line", w.Line).
			Msg(w.Msg)
	}

	r.logger.Info().
		Str("locale", tag).
		Str("file", name).
		Int("entries", c.Len()).
		Msg("Loaded locale")

	return c, nil
}

// normalizeTag maps file-name style identifiers ("pt_BR") to BCP 47 form.
func normalizeTag(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}

// dirFS adapts a configured directory path for registry use.
func dirFS(dir string) fs.FS {
	return os.DirFS(dir)
}
