// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode transliteration support.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// nonAlnumRegex matches runs of characters that are not lowercase letters or digits.
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a string to a URL-friendly slug.
// It transliterates Unicode to ASCII, converts to lowercase, collapses runs
// of non-alphanumeric characters into single hyphens, and trims hyphens.
func Slugify(s string) string {
	result := unidecode.Unidecode(s)
	result = strings.ToLower(result)
	result = nonAlnumRegex.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	// Check if it only contains lowercase letters, numbers, and hyphens
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	// Check that it doesn't start or end with a hyphen
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	// Check for consecutive hyphens
	if strings.Contains(s, "--") {
		return false
	}

	return true
}
