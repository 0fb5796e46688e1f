// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"
	"unicode/utf8"

	"promptcard/internal/models"
)

// Limits for user-entered text.
const (
	maxTitleLen       = 300
	maxAuthorLen      = 200
	maxDescriptionLen = 100_000
	maxFolderNameLen  = 100
	maxTagLen         = 100
)

// validateCardText checks the free-text fields of a card.
func validateCardText(title, description, author string) error {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return invalid("title", CodeTooLong)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return invalid("description", CodeTooLong)
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return invalid("author", CodeTooLong)
	}
	return nil
}

// validateImages rejects an image list where two entries share a path.
func validateImages(images []models.Image) error {
	seen := make(map[string]bool, len(images))
	for _, img := range images {
		if seen[img.Path] {
			return invalid("images", CodeDuplicate)
		}
		seen[img.Path] = true
	}
	return nil
}

// cleanName trims a folder or tag name and checks it is present and short enough.
func cleanName(field, name string, limit int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, CodeRequired)
	}
	if utf8.RuneCountInString(name) > limit {
		return "", invalid(field, CodeTooLong)
	}
	return name, nil
}
