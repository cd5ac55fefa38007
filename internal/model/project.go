// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Project category constants
const (
	ProjectCategoryFullStack = "Full Stack"
	ProjectCategoryFrontend  = "Frontend"
	ProjectCategoryBackend   = "Backend"
	ProjectCategoryMobile    = "Mobile"
	ProjectCategoryOther     = "Other"
)

// Project status constants
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"
)

// ValidProjectCategories returns all valid project categories.
func ValidProjectCategories() []string {
	return []string{
		ProjectCategoryFullStack,
		ProjectCategoryFrontend,
		ProjectCategoryBackend,
		ProjectCategoryMobile,
		ProjectCategoryOther,
	}
}

// IsValidProjectCategory checks if a project category is valid.
func IsValidProjectCategory(category string) bool {
	for _, c := range ValidProjectCategories() {
		if c == category {
			return true
		}
	}
	return false
}
