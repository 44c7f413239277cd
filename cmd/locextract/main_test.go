// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// loadHostSample type-checks the fixture package the way main loads a host
// module: the locale package is reachable only through the import graph,
// never as a top-level pattern.
func loadHostSample(t *testing.T) []*packages.Package {
	t.Helper()

	pkgs, err := packages.Load(
		&packages.Config{Mode: packages.LoadAllSyntax, Tests: false},
		"./testdata/hostsample",
	)
	require.NoError(t, err)
	require.Zero(t, packages.PrintErrors(pkgs))

	return pkgs
}

func TestFindLocalePkgPathsThroughImportGraph(t *testing.T) {
	t.Parallel()

	localePkgs := findLocalePkgPaths(loadHostSample(t))

	assert.Contains(t, localePkgs, "codeberg.org/loctool/loctool/locale")
}

func TestExtractRefsFromHostSources(t *testing.T) {
	t.Parallel()

	pkgs := loadHostSample(t)

	wd, err := os.Getwd()
	require.NoError(t, err)

	refs := extractRefs(pkgs, wd, findLocalePkgPaths(pkgs))

	// Registry.Resolve, Registry.ResolveWithArgs, and the MsgKey conversion.
	for _, key := range []string{"gen_loc_accept", "files_imported", "dialog_import_title"} {
		rs, ok := refs[key]
		require.True(t, ok, "key %q not extracted", key)
		require.NotEmpty(t, rs)
		assert.Equal(t, "testdata/hostsample/host.go", rs[0].file)
		assert.Positive(t, rs[0].line)
	}

	// String literals passed to unrelated functions are not keys.
	assert.NotContains(t, refs, "not_a_lookup")
}
