// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"fmt"
	"io/fs"

	"github.com/leonelquinteros/gotext"

	"codeberg.org/loctool/loctool/catalog"
)

// LoadPO flattens a GNU gettext .po file into a Catalog keyed by msgid.
//
// It exists for hosts migrating off gettext: existing .po translations can
// be installed into a [Registry] via [Registry.AddCatalog] without first
// converting them to the native resource format. Entries without a
// translation are dropped so lookups fall through to the fallback locale.
// Context and plural variants are not carried over.
func LoadPO(fsys fs.FS, name string) (*catalog.Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read po file %s: %w", name, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	entries := make(map[string]string)

	for id, tr := range po.GetDomain().GetTranslations() {
		if id == "" {
			// The header pseudo-entry.
			continue
		}

		if text := tr.Get(); text != "" && text != id {
			entries[id] = text
		}
	}

	return catalog.New(entries), nil
}
