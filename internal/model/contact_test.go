// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestContactSubmissionValidate(t *testing.T) {
	valid := ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Hello",
		Message: "Great portfolio!",
	}

	tests := []struct {
		name    string
		mutate  func(*ContactSubmission)
		wantErr string
	}{
		{
			name:   "valid submission",
			mutate: func(s *ContactSubmission) {},
		},
		{
			name:    "missing name",
			mutate:  func(s *ContactSubmission) { s.Name = "  " },
			wantErr: "name is required",
		},
		{
			name:    "name too long",
			mutate:  func(s *ContactSubmission) { s.Name = strings.Repeat("a", 101) },
			wantErr: "name must be at most 100",
		},
		{
			name:    "missing email",
			mutate:  func(s *ContactSubmission) { s.Email = "" },
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			mutate:  func(s *ContactSubmission) { s.Email = "not-an-email" },
			wantErr: "not a valid address",
		},
		{
			name:    "email with spaces",
			mutate:  func(s *ContactSubmission) { s.Email = "a b@example.com" },
			wantErr: "not a valid address",
		},
		{
			name:    "subject too long",
			mutate:  func(s *ContactSubmission) { s.Subject = strings.Repeat("s", 201) },
			wantErr: "subject must be at most 200",
		},
		{
			name:    "message too long",
			mutate:  func(s *ContactSubmission) { s.Message = strings.Repeat("m", 2001) },
			wantErr: "message must be at most 2000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestContactSubmissionNormalizesEmail(t *testing.T) {
	s := ContactSubmission{
		Name:    "Jane",
		Email:   "  Jane@Example.COM ",
		Subject: "Hi",
		Message: "msg",
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if s.Email != "jane@example.com" {
		t.Errorf("Email = %q, want lowercased and trimmed", s.Email)
	}
}

func TestIsValidContactStatus(t *testing.T) {
	for _, s := range []string{"new", "read", "replied", "archived"} {
		if !IsValidContactStatus(s) {
			t.Errorf("IsValidContactStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "spam", "NEW"} {
		if IsValidContactStatus(s) {
			t.Errorf("IsValidContactStatus(%q) = true, want false", s)
		}
	}
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content falls back", "", DefaultReadTime},
		{"short content", "just a few words here", 1},
		{"two hundred words", strings.Repeat("word ", 200), 1},
		{"two hundred one words", strings.Repeat("word ", 201), 2},
		{"long article", strings.Repeat("word ", 1000), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.content); got != tt.want {
				t.Errorf("EstimateReadTime() = %d, want %d", got, tt.want)
			}
		})
	}
}
