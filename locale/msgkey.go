// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

// MsgKey is a message key known at compile time.
//
// UI code declares its keys as typed constants so cmd/locextract can find
// them and keep the base catalog in sync:
//
//	const acceptLabel = locale.MsgKey("gen_loc_accept")
//	...
//	button.SetText(acceptLabel.Resolve(reg))
type MsgKey string

// Resolve looks the key up in reg's active locale chain.
func (k MsgKey) Resolve(r *Registry) string {
	return r.Resolve(string(k))
}

// ResolveWithArgs resolves the key and substitutes args into its
// placeholders.
func (k MsgKey) ResolveWithArgs(r *Registry, args ...string) string {
	return r.ResolveWithArgs(string(k), args...)
}
