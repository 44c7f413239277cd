// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/loctool/loctool/assets"
	"codeberg.org/loctool/loctool/catalog"
	"codeberg.org/loctool/loctool/config"
)

// DefaultFallback is the base locale used when none is configured.
const DefaultFallback = "en"

// ErrLocaleNotFound reports a locale with no loadable catalog.
var ErrLocaleNotFound = errors.New("locale not found")

// Options configures a Registry.
//
// Zero fields fall back to the loaded application configuration
// ([config.Global]) and, past that, to the catalogs embedded in the binary
// with "en" as the fallback locale.
type Options struct {
	// FS is the resource directory holding <locale>.ftl catalogs.
	FS fs.FS

	// Fallback is the base locale consulted for keys the active locale lacks.
	// Its catalog is loaded eagerly and kept for the registry's lifetime.
	Fallback string

	// Active is the locale used for lookups. Defaults to Fallback. If its
	// catalog cannot be loaded the registry starts on the fallback instead;
	// a bad locale preference must not prevent startup.
	Active string

	// Strict wraps missing keys as "⟦key⟧" instead of returning the bare
	// key, making gaps easy to spot for translators.
	Strict bool
}

// Registry holds the loaded catalogs and the active locale choice.
// It is safe for concurrent use.
type Registry struct {
	fsys   fs.FS
	strict bool
	logger zerolog.Logger

	// mu serializes snapshot replacement; readers never take it.
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]

	// missingKeyOnce and argMismatchOnce deduplicate WARN logs for missing
	// keys and placeholder/argument mismatches. The key is locale+"\x00"+key.
	missingKeyOnce  sync.Map
	argMismatchOnce sync.Map
}

// snapshot is the immutable registry state swapped whole on every change.
type snapshot struct {
	activeTag   string
	fallbackTag string
	active      *catalog.Catalog
	fallback    *catalog.Catalog

	// loaded caches catalogs by canonical tag, fallback included.
	loaded map[string]*catalog.Catalog

	// files maps canonical tags to catalog file names; tags registered
	// through AddCatalog map to "".
	files map[string]string

	// tags lists every available locale, fallback first; matcher is
	// derived from it.
	tags    []language.Tag
	matcher language.Matcher
}

// New builds a Registry, scanning the resource directory for available
// locales and loading the fallback catalog (and the active one, when it
// differs) up front.
//
// It fails only when the fallback catalog cannot be loaded; every other
// defect degrades to a logged warning.
func New(opts Options) (*Registry, error) {
	r := &Registry{
		fsys:   opts.FS,
		strict: opts.Strict || config.Global.Locale.StrictMissingKeys,
		logger: log.With().Str("sys", "locale").Logger(),
	}

	if r.fsys == nil {
		if dir := config.Global.Locale.Dir; dir != "" {
			r.fsys = dirFS(dir)
		} else {
			r.fsys = assets.Locales()
		}
	}

	fallback := opts.Fallback
	if fallback == "" {
		fallback = config.Global.Locale.Fallback
	}

	if fallback == "" {
		fallback = DefaultFallback
	}

	fallbackTag, err := parseTag(fallback)
	if err != nil {
		return nil, err
	}

	files, err := scanLocales(r.fsys, r.logger)
	if err != nil {
		return nil, err
	}

	fallbackCanon := fallbackTag.String()
	if _, ok := files[fallbackCanon]; !ok {
		return nil, fmt.Errorf("fallback locale %q: %w", fallback, ErrLocaleNotFound)
	}

	active := opts.Active
	if active == "" {
		active = config.Global.Locale.Active
	}

	snap := &snapshot{
		fallbackTag: fallbackCanon,
		files:       files,
	}
	snap.buildMatcher()

	activeCanon := fallbackCanon

	if active != "" {
		// The same matching SetActive uses, so a regional preference like
		// "es-MX" finds an "es" catalog at startup too.
		canonical, err := snap.match(active)
		if err != nil {
			r.logger.Warn().Err(err).Str("locale", active).Msg("Active locale has no catalog, staying on fallback")
		} else {
			activeCanon = canonical
		}
	}

	loaded := make(map[string]*catalog.Catalog, 2)

	var (
		g         errgroup.Group
		fallbackC *catalog.Catalog
		activeC   *catalog.Catalog
	)

	g.Go(func() error {
		c, err := r.readCatalog(fallbackCanon, files[fallbackCanon])
		if err != nil {
			return fmt.Errorf("fallback locale %q: %w", fallbackCanon, err)
		}

		fallbackC = c

		return nil
	})

	if activeCanon != fallbackCanon {
		g.Go(func() error {
			c, err := r.readCatalog(activeCanon, files[activeCanon])
			if err != nil {
				// The active locale is a preference; failing to load it
				// must not prevent startup.
				r.logger.Warn().Err(err).Str("locale", activeCanon).Msg("Failed to load active locale, staying on fallback")

				return nil
			}

			activeC = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded[fallbackCanon] = fallbackC

	if activeC == nil {
		activeCanon = fallbackCanon
		activeC = fallbackC
	} else {
		loaded[activeCanon] = activeC
	}

	snap.activeTag = activeCanon
	snap.active = activeC
	snap.fallback = fallbackC
	snap.loaded = loaded
	r.snap.Store(snap)

	r.logger.Info().
		Str("active", activeCanon).
		Str("fallback", fallbackCanon).
		Int("locales", len(files)).
		Msg("Locale registry initialized")

	return r, nil
}

// Resolve returns the text for key in the active locale, falling back to
// the base locale and finally to the key itself. Escaped braces in the
// template are rendered; see [ResolveWithArgs] for placeholder substitution.
func (r *Registry) Resolve(key string) string {
	return r.ResolveWithArgs(key)
}

// ResolveWithArgs resolves key and substitutes args into its placeholders
// left to right. Argument mismatches degrade to best-effort output with a
// logged warning; the call never fails.
func (r *Registry) ResolveWithArgs(key string, args ...string) string {
	snap := r.snap.Load()

	template, ok := snap.active.Lookup(key)
	if !ok {
		template, ok = snap.fallback.Lookup(key)
	}

	if !ok {
		r.logMissingOnce(snap.activeTag, key)

		if r.strict {
			return "⟦" + key + "⟧"
		}

		return key
	}

	out, warnings := catalog.Expand(template, args...)
	for _, w := range warnings {
		r.logArgMismatchOnce(snap.activeTag, key, w.Msg)
	}

	return out
}

// SetActive switches the locale used by subsequent lookups, loading its
// catalog if this is the first use. On failure the registry stays on the
// previously active locale and the returned error wraps [ErrLocaleNotFound]
// when id has no loadable catalog.
//
// The switch is atomic: concurrent readers see either the old locale or the
// new one in full.
func (r *Registry) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()

	canonical, err := cur.match(id)
	if err != nil {
		return err
	}

	if canonical == cur.activeTag {
		return nil
	}

	cat := cur.loaded[canonical]
	if cat == nil {
		cat, err = r.readCatalog(canonical, cur.files[canonical])
		if err != nil {
			return fmt.Errorf("locale %q: %w: %v", canonical, ErrLocaleNotFound, err)
		}
	}

	next := cur.clone()
	next.activeTag = canonical
	next.active = cat
	next.loaded[canonical] = cat
	r.snap.Store(next)

	r.logger.Info().Str("locale", canonical).Msg("Switched active locale")

	return nil
}

// AddCatalog registers an in-memory catalog under a locale identifier,
// making it selectable with [Registry.SetActive]. Hosts use it to install
// catalogs that do not live in the resource directory, such as ones
// converted from gettext with [LoadPO].
func (r *Registry) AddCatalog(id string, c *catalog.Catalog) error {
	t, err := parseTag(id)
	if err != nil {
		return err
	}

	canonical := t.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.snap.Load().clone()
	next.loaded[canonical] = c

	if _, known := next.files[canonical]; !known {
		next.files[canonical] = ""
		next.buildMatcher()
	}

	// A reload of the active or fallback locale takes effect immediately.
	if canonical == next.activeTag {
		next.active = c
	}

	if canonical == next.fallbackTag {
		next.fallback = c
	}

	r.snap.Store(next)

	return nil
}

// Active returns the canonical tag of the active locale.
func (r *Registry) Active() string {
	return r.snap.Load().activeTag
}

// Fallback returns the canonical tag of the fallback locale.
func (r *Registry) Fallback() string {
	return r.snap.Load().fallbackTag
}

// Locales returns the sorted canonical tags of every available locale,
// loadable or already loaded. The slice is a copy and safe to retain.
func (r *Registry) Locales() []string {
	snap := r.snap.Load()

	out := make([]string, 0, len(snap.tags))
	for _, t := range snap.tags {
		out = append(out, t.String())
	}

	sort.Strings(out)

	return out
}

// clone copies the snapshot with a fresh loaded/files map so the previous
// snapshot stays untouched for in-flight readers.
func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		activeTag:   s.activeTag,
		fallbackTag: s.fallbackTag,
		active:      s.active,
		fallback:    s.fallback,
		loaded:      make(map[string]*catalog.Catalog, len(s.loaded)+1),
		files:       make(map[string]string, len(s.files)+1),
		tags:        s.tags,
		matcher:     s.matcher,
	}

	for k, v := range s.loaded {
		next.loaded[k] = v
	}

	for k, v := range s.files {
		next.files[k] = v
	}

	return next
}

// buildMatcher derives the tag list and matcher from the available files.
// The fallback tag goes first so it is the matcher's default.
func (s *snapshot) buildMatcher() {
	tags := make([]language.Tag, 0, len(s.files))

	for id := range s.files {
		if id == s.fallbackTag {
			continue
		}

		tags = append(tags, language.Make(id))
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	s.tags = append([]language.Tag{language.Make(s.fallbackTag)}, tags...)
	s.matcher = language.NewMatcher(s.tags)
}

// match resolves a requested identifier to the canonical tag of an
// available locale, so "es-MX" finds an "es" catalog.
func (s *snapshot) match(id string) (string, error) {
	t, err := parseTag(id)
	if err != nil {
		return "", err
	}

	_, index, conf := s.matcher.Match(t)
	if conf == language.No {
		return "", fmt.Errorf("locale %q: %w", id, ErrLocaleNotFound)
	}

	return s.tags[index].String(), nil
}

// parseTag canonicalizes a locale identifier, accepting both "pt-BR" and
// "pt_BR" forms.
func parseTag(id string) (language.Tag, error) {
	t, err := language.Parse(normalizeTag(id))
	if err != nil {
		return language.Tag{}, fmt.Errorf("locale %q: %w", id, ErrLocaleNotFound)
	}

	return t, nil
}
