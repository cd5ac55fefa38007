// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Contact status constants
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// Contact field length limits
const (
	MaxContactNameLen    = 100
	MaxContactSubjectLen = 200
	MaxContactMessageLen = 2000
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidContactStatuses returns all valid contact statuses.
func ValidContactStatuses() []string {
	return []string{
		ContactStatusNew,
		ContactStatusRead,
		ContactStatusReplied,
		ContactStatusArchived,
	}
}

// IsValidContactStatus checks if a contact status is valid.
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ContactSubmission holds a contact form submission before persistence.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate checks required fields, length bounds and email format.
// It returns the first violation found, keyed by field name.
func (s *ContactSubmission) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)

	switch {
	case s.Name == "":
		return fmt.Errorf("name is required")
	case len(s.Name) > MaxContactNameLen:
		return fmt.Errorf("name must be at most %d characters", MaxContactNameLen)
	case s.Email == "":
		return fmt.Errorf("email is required")
	case !emailRe.MatchString(s.Email):
		return fmt.Errorf("email is not a valid address")
	case s.Subject == "":
		return fmt.Errorf("subject is required")
	case len(s.Subject) > MaxContactSubjectLen:
		return fmt.Errorf("subject must be at most %d characters", MaxContactSubjectLen)
	case s.Message == "":
		return fmt.Errorf("message is required")
	case len(s.Message) > MaxContactMessageLen:
		return fmt.Errorf("message must be at most %d characters", MaxContactMessageLen)
	}

	return nil
}
