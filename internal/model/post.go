// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// MaxPostExcerptLen is the maximum excerpt length for a blog post.
const MaxPostExcerptLen = 300

// DefaultReadTime is the fallback reading time in minutes.
const DefaultReadTime = 5

// readWordsPerMinute is the assumed reading speed for estimates.
const readWordsPerMinute = 200

// EstimateReadTime returns the estimated reading time in minutes for the
// given content, at least 1 for non-empty content.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return DefaultReadTime
	}
	minutes := (words + readWordsPerMinute - 1) / readWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
