// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns card titles into file-name friendly slugs.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen caps the length of a generated slug in runes.
const MaxLen = 60

var (
	// nonWord matches anything that isn't a letter, digit, space or hyphen.
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a slug from the given string. Accents are stripped from
// Latin letters; letters of other scripts are kept.
// Example: "Café Résumé: 2026 ✨" → "cafe-resume-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(stripMarks(s)))
	result = nonWord.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if r := []rune(result); len(r) > MaxLen {
		result = strings.TrimRight(string(r[:MaxLen]), "-")
	}
	return result
}

// OrDefault returns Generate(s), or fallback when the slug would be empty.
func OrDefault(s, fallback string) string {
	if out := Generate(s); out != "" {
		return out
	}
	return fallback
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
