// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "gen_loc_accept"
msgstr "Akzeptieren"

msgid "gen_loc_cancel"
msgstr "Abbrechen"

msgid "gen_loc_close"
msgstr ""
`

func TestLoadPO(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"de.po": {Data: []byte(testPO)},
	}

	c, err := LoadPO(fsys, "de.po")
	require.NoError(t, err)

	got, ok := c.Lookup("gen_loc_accept")
	require.True(t, ok)
	assert.Equal(t, "Akzeptieren", got)

	// Untranslated entries are dropped so resolution falls through to the
	// fallback locale.
	_, ok = c.Lookup("gen_loc_close")
	assert.False(t, ok)
}

func TestLoadPOMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadPO(fstest.MapFS{}, "de.po")
	assert.Error(t, err)
}

func TestLoadPOIntoRegistry(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	c, err := LoadPO(fstest.MapFS{"de.po": {Data: []byte(testPO)}}, "de.po")
	require.NoError(t, err)

	require.NoError(t, reg.AddCatalog("de", c))
	require.NoError(t, reg.SetActive("de"))

	assert.Equal(t, "Akzeptieren", reg.Resolve("gen_loc_accept"))
	// Fallback still serves keys the .po never carried.
	assert.Equal(t, "Files to import: 7.", reg.ResolveWithArgs("files_imported", "7"))
}
