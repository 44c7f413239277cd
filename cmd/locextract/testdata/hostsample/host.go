// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package hostsample is a miniature host application used to exercise the
// key extractor. It lives under testdata so the module build ignores it.
package hostsample

import (
	"codeberg.org/loctool/loctool/locale"
)

const openTitle = locale.MsgKey("dialog_import_title")

// Labels renders the strings a host window would show.
func Labels(reg *locale.Registry) []string {
	return []string{
		reg.Resolve("gen_loc_accept"),
		reg.ResolveWithArgs("files_imported", "5"),
		openTitle.Resolve(reg),
		show("not_a_lookup"),
	}
}

func show(s string) string {
	return s
}
