// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/loctool/loctool/catalog"
)

// testFS returns a resource directory with an English base catalog and a
// partial Spanish translation.
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en.ftl": {Data: []byte(
			"## General\n" +
				"gen_loc_accept = Accept\n" +
				"gen_loc_cancel = Cancel\n" +
				"files_imported = Files to import: {}.\n",
		)},
		"es.ftl": {Data: []byte(
			"## General\n" +
				"gen_loc_cancel = Cancelar\n" +
				"files_imported = Archivos a importar: {}.\n",
		)},
	}
}

func newTestRegistry(t *testing.T, opts Options) *Registry {
	t.Helper()

	if opts.FS == nil {
		opts.FS = testFS()
	}

	if opts.Fallback == "" {
		opts.Fallback = "en"
	}

	reg, err := New(opts)
	require.NoError(t, err)

	return reg
}

func TestResolveActiveLocale(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{Active: "es"})

	assert.Equal(t, "es", reg.Active())
	assert.Equal(t, "en", reg.Fallback())
	assert.Equal(t, "Cancelar", reg.Resolve("gen_loc_cancel"))
}

func TestResolveFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{Active: "es"})

	// gen_loc_accept is absent from es.ftl.
	assert.Equal(t, "Accept", reg.Resolve("gen_loc_accept"))
}

func TestResolveMissingKeyReturnsKey(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	assert.Equal(t, "gen_loc_no_such_key", reg.Resolve("gen_loc_no_such_key"))
}

func TestResolveMissingKeyStrictMode(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{Strict: true})

	assert.Equal(t, "⟦gen_loc_no_such_key⟧", reg.Resolve("gen_loc_no_such_key"))
}

func TestResolveWithArgs(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	assert.Equal(t, "Files to import: 5.", reg.ResolveWithArgs("files_imported", "5"))

	// Argument mismatch degrades, never panics.
	assert.Equal(t, "Files to import: .", reg.ResolveWithArgs("files_imported"))
}

// TestResolveWithArgsWarnsOnce swaps the global logger, so no t.Parallel.
func TestResolveWithArgsWarnsOnce(t *testing.T) {
	var buf bytes.Buffer

	prev := log.Logger
	log.Logger = zerolog.New(&buf)

	defer func() { log.Logger = prev }()

	reg, err := New(Options{FS: testFS(), Fallback: "en"})
	require.NoError(t, err)

	// Repeated renders of the same stale template log one warning.
	reg.ResolveWithArgs("files_imported")
	reg.ResolveWithArgs("files_imported")
	reg.ResolveWithArgs("files_imported")

	assert.Equal(t, 1, strings.Count(buf.String(), "placeholders"))
}

func TestSetActive(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	require.NoError(t, reg.SetActive("es"))
	assert.Equal(t, "es", reg.Active())
	assert.Equal(t, "Cancelar", reg.Resolve("gen_loc_cancel"))
}

func TestSetActiveMatchesRegionalVariant(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	// es-MX has no catalog of its own; matching finds es.
	require.NoError(t, reg.SetActive("es-MX"))
	assert.Equal(t, "es", reg.Active())
}

func TestSetActiveUnknownLocale(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	err := reg.SetActive("zh")
	require.ErrorIs(t, err, ErrLocaleNotFound)

	// The registry stays on the previous locale.
	assert.Equal(t, "en", reg.Active())
	assert.Equal(t, "Accept", reg.Resolve("gen_loc_accept"))
}

func TestNewMissingFallback(t *testing.T) {
	t.Parallel()

	_, err := New(Options{FS: fstest.MapFS{}, Fallback: "en"})
	assert.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestNewMatchesRegionalVariant(t *testing.T) {
	t.Parallel()

	// Startup resolves the active locale with the same matching SetActive
	// uses, so a stored "es-MX" preference finds the es catalog.
	reg := newTestRegistry(t, Options{Active: "es-MX"})

	assert.Equal(t, "es", reg.Active())
	assert.Equal(t, "Cancelar", reg.Resolve("gen_loc_cancel"))
}

func TestNewBadActiveStaysOnFallback(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{Active: "zh"})

	assert.Equal(t, "en", reg.Active())
	assert.Equal(t, "Accept", reg.Resolve("gen_loc_accept"))
}

func TestLocales(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	assert.Equal(t, []string{"en", "es"}, reg.Locales())
}

func TestAddCatalog(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	c := catalog.New(map[string]string{"gen_loc_accept": "Akzeptieren"})
	require.NoError(t, reg.AddCatalog("de", c))

	assert.Equal(t, []string{"de", "en", "es"}, reg.Locales())

	require.NoError(t, reg.SetActive("de"))
	assert.Equal(t, "Akzeptieren", reg.Resolve("gen_loc_accept"))
	// Keys absent from the added catalog still fall back.
	assert.Equal(t, "Cancel", reg.Resolve("gen_loc_cancel"))
}

func TestEmbeddedDefaultCatalogs(t *testing.T) {
	t.Parallel()

	// A nil FS with no configured directory uses the embedded catalogs.
	reg, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, "Accept", reg.Resolve("gen_loc_accept"))

	require.NoError(t, reg.SetActive("es"))
	assert.Equal(t, "Cancelar", reg.Resolve("gen_loc_cancel"))
	assert.Equal(t, "Accept", reg.Resolve("gen_loc_accept"))
}

func TestMsgKey(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	const accept = MsgKey("gen_loc_accept")

	assert.Equal(t, "Accept", accept.Resolve(reg))
	assert.Equal(t, "Files to import: 3.", MsgKey("files_imported").ResolveWithArgs(reg, "3"))
}

// TestConcurrentSwitching exercises lock-free readers against locale
// switches. Run with -race; a reader must only ever observe a value from
// one complete catalog load.
func TestConcurrentSwitching(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, Options{})

	var wg sync.WaitGroup

	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-stop:
					return
				default:
				}

				got := reg.Resolve("gen_loc_cancel")
				assert.Contains(t, []string{"Cancel", "Cancelar"}, got)
			}
		}()
	}

	for range 100 {
		require.NoError(t, reg.SetActive("es"))
		require.NoError(t, reg.SetActive("en"))
	}

	close(stop)
	wg.Wait()
}
