// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import "testing"

func TestNewLookupDisabled(t *testing.T) {
	g, err := NewLookup("")
	if err != nil {
		t.Fatalf("NewLookup(\"\") error = %v", err)
	}
	if g.IsEnabled() {
		t.Error("IsEnabled() = true, want false without database")
	}
	if got := g.LookupCountry("8.8.8.8"); got != "" {
		t.Errorf("LookupCountry() = %q, want empty without database", got)
	}
}

func TestNewLookupMissingFile(t *testing.T) {
	g, err := NewLookup("/nonexistent/GeoLite2-Country.mmdb")
	if err == nil {
		t.Error("NewLookup() error = nil, want error for missing file")
	}
	if g.IsEnabled() {
		t.Error("IsEnabled() = true, want false for missing file")
	}
}

func TestLookupCountryLocalAddresses(t *testing.T) {
	g, _ := NewLookup("")

	tests := []struct {
		name string
		ip   string
		want string
	}{
		{"private 10.x", "10.1.2.3", "LOCAL"},
		{"private 192.168.x", "192.168.1.1", "LOCAL"},
		{"private 172.16.x", "172.16.0.5", "LOCAL"},
		{"loopback v4", "127.0.0.1", "LOCAL"},
		{"loopback v6", "::1", "LOCAL"},
		{"link-local v6", "fe80::1", "LOCAL"},
		{"invalid", "not-an-ip", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.LookupCountry(tt.ip); got != tt.want {
				t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
			}
		})
	}
}

func TestReloadWithoutPath(t *testing.T) {
	g, _ := NewLookup("")
	if err := g.Reload(); err != nil {
		t.Errorf("Reload() error = %v, want nil when no path configured", err)
	}
}
