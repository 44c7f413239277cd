// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command loccheck audits a catalog directory against its base locale.
//
// It reports malformed lines, keys a translation is missing, stale keys the
// base locale no longer has, and placeholder-count drift between a base
// template and its translation. The exit status is nonzero when any problem
// is found, so it slots into CI.
//
// Usage:
//
//	go run ./cmd/loccheck -dir assets/locales -base en [-o report.yaml]
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/loctool/loctool/catalog"
	"codeberg.org/loctool/loctool/core/audit"
	"codeberg.org/loctool/loctool/locale"
)

const reportFilePerm = 0o644

// report is the YAML shape of a full audit.
type report struct {
	Base    string         `yaml:"base"`
	Locales []localeReport `yaml:"locales"`
}

type localeReport struct {
	Locale        string   `yaml:"locale"`
	File          string   `yaml:"file"`
	ParseWarnings []string `yaml:"parseWarnings,omitempty"`
	MissingKeys   []string `yaml:"missingKeys,omitempty"`
	StaleKeys     []string `yaml:"staleKeys,omitempty"`
	Placeholders  []string `yaml:"placeholderMismatches,omitempty"`
}

func (lr localeReport) problems() int {
	return len(lr.ParseWarnings) + len(lr.MissingKeys) + len(lr.StaleKeys) + len(lr.Placeholders)
}

func main() {
	audit.SetDefaultLogger()

	dir := flag.String("dir", "assets/locales", "catalog directory to audit")
	base := flag.String("base", "en", "base locale the translations are checked against")
	outPath := flag.String("o", "", "optional YAML report output file")
	flag.Parse()

	rep, err := run(os.DirFS(*dir), *base)
	if err != nil {
		log.Fatal().Err(err).Msg("Audit failed")
	}

	problems := 0

	for _, lr := range rep.Locales {
		problems += lr.problems()

		logLocale(lr)
	}

	if *outPath != "" {
		data, err := yaml.Marshal(rep)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal report")
		}

		if err := os.WriteFile(*outPath, data, reportFilePerm); err != nil {
			log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write report")
		}

		log.Info().Str("path", *outPath).Msg("Wrote report")
	}

	if problems > 0 {
		log.Error().Int("problems", problems).Msg("Catalog audit found problems")
		os.Exit(1)
	}

	log.Info().Int("locales", len(rep.Locales)).Msg("Catalog audit passed")
}

func run(fsys fs.FS, base string) (*report, error) {
	files, err := locale.Scan(fsys)
	if err != nil {
		return nil, err
	}

	baseTag, err := language.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base locale %q: %w", base, err)
	}

	baseCanon := baseTag.String()

	baseFile, ok := files[baseCanon]
	if !ok {
		return nil, fmt.Errorf("base locale %q has no catalog", baseCanon)
	}

	baseCat, baseWarnings, err := locale.ReadFile(fsys, baseFile)
	if err != nil {
		return nil, err
	}

	rep := &report{Base: baseCanon}

	baseReport := localeReport{Locale: baseCanon, File: baseFile}
	for _, w := range baseWarnings {
		baseReport.ParseWarnings = append(baseReport.ParseWarnings, w.String())
	}

	rep.Locales = append(rep.Locales, baseReport)

	tags := make([]string, 0, len(files))
	for tag := range files {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	for _, tag := range tags {
		if tag == baseCanon {
			continue
		}

		lr, err := auditLocale(fsys, tag, files[tag], baseCat)
		if err != nil {
			return nil, err
		}

		rep.Locales = append(rep.Locales, lr)
	}

	return rep, nil
}

// auditLocale compares one translation against the base catalog.
func auditLocale(fsys fs.FS, tag, file string, baseCat *catalog.Catalog) (localeReport, error) {
	lr := localeReport{Locale: tag, File: file}

	c, warnings, err := locale.ReadFile(fsys, file)
	if err != nil {
		return lr, err
	}

	for _, w := range warnings {
		lr.ParseWarnings = append(lr.ParseWarnings, w.String())
	}

	for _, key := range baseCat.Keys() {
		baseTemplate, _ := baseCat.Lookup(key)

		translated, ok := c.Lookup(key)
		if !ok {
			lr.MissingKeys = append(lr.MissingKeys, key)

			continue
		}

		baseCount := catalog.Placeholders(baseTemplate)
		if gotCount := catalog.Placeholders(translated); gotCount != baseCount {
			lr.Placeholders = append(lr.Placeholders,
				fmt.Sprintf("%s: base has %d placeholders, translation has %d", key, baseCount, gotCount))
		}
	}

	for _, key := range c.Keys() {
		if _, ok := baseCat.Lookup(key); !ok {
			lr.StaleKeys = append(lr.StaleKeys, key)
		}
	}

	return lr, nil
}

func logLocale(lr localeReport) {
	if lr.problems() == 0 {
		log.Info().Str("locale", lr.Locale).Msg("OK")

		return
	}

	event := log.Warn().
		Str("locale", lr.Locale).
		Str("file", lr.File)

	if len(lr.ParseWarnings) > 0 {
		event = event.Strs("parse", lr.ParseWarnings)
	}

	if len(lr.MissingKeys) > 0 {
		event = event.Strs("missing", lr.MissingKeys)
	}

	if len(lr.StaleKeys) > 0 {
		event = event.Strs("stale", lr.StaleKeys)
	}

	if len(lr.Placeholders) > 0 {
		event = event.Strs("placeholders", lr.Placeholders)
	}

	event.Msg("Catalog problems")
}
