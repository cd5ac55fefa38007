// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != "./data/folio.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/folio.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.StatsTTL != 30 {
		t.Errorf("StatsTTL = %d, want 30", cfg.StatsTTL)
	}
	if cfg.RateLimit != 100 || cfg.RateWindow != 900 {
		t.Errorf("rate limit = %d/%ds, want 100/900s", cfg.RateLimit, cfg.RateWindow)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
	}{
		{
			name:    "valid overrides",
			envs:    map[string]string{"FOLIO_SERVER_PORT": "9090", "FOLIO_ENV": "production"},
			wantErr: false,
		},
		{
			name:    "port out of range",
			envs:    map[string]string{"FOLIO_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "zero rate limit",
			envs:    map[string]string{"FOLIO_RATE_LIMIT": "0"},
			wantErr: true,
		},
		{
			name:    "base url without scheme",
			envs:    map[string]string{"FOLIO_BASE_URL": "example.com"},
			wantErr: true,
		},
		{
			name:    "base url with scheme",
			envs:    map[string]string{"FOLIO_BASE_URL": "https://folio.example.com"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFeatureToggles(t *testing.T) {
	t.Setenv("FOLIO_SMTP_USER", "me@example.com")
	t.Setenv("FOLIO_SMTP_PASS", "app-password")
	t.Setenv("FOLIO_GEMINI_API_KEY", "AIzaTest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.MailEnabled() {
		t.Error("MailEnabled() = false, want true")
	}
	if cfg.MailRecipient() != "me@example.com" {
		t.Errorf("MailRecipient() = %q, want SMTP user fallback", cfg.MailRecipient())
	}
	if !cfg.AIEnabled() {
		t.Error("AIEnabled() = false, want true")
	}
	if cfg.CloudinaryEnabled() {
		t.Error("CloudinaryEnabled() = true, want false without credentials")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false without URL")
	}
}
