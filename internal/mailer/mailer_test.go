// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		m    *Mailer
		want bool
	}{
		{"full credentials", New("smtp.gmail.com", 587, "me@example.com", "pass", "me@example.com"), true},
		{"missing pass", New("smtp.gmail.com", 587, "me@example.com", "", "me@example.com"), false},
		{"missing user", New("smtp.gmail.com", 587, "", "pass", "me@example.com"), false},
		{"missing host", New("", 587, "me@example.com", "pass", "me@example.com"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSendNotConfigured(t *testing.T) {
	m := New("", 0, "", "", "")
	err := m.Send(context.Background(), "s", "t", "<p>h</p>")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("me@example.com", "you@example.com", "Hello", "plain body", "<p>html body</p>")

	for _, want := range []string{
		"From: Portfolio <me@example.com>\r\n",
		"To: you@example.com\r\n",
		"Subject: Hello\r\n",
		"MIME-Version: 1.0\r\n",
		"multipart/alternative",
		"Content-Type: text/plain; charset=UTF-8\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"plain body",
		"<p>html body</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}

	// Closing boundary present
	if !strings.Contains(msg, "--\r\n") {
		t.Error("message missing closing boundary")
	}
}

func TestBuildContactHTMLEscapes(t *testing.T) {
	out := buildContactHTML(ContactNotification{
		Name:    "<script>alert(1)</script>",
		Email:   "a@b.com",
		Subject: "s",
		Message: "<b>bold</b>",
		SentAt:  time.Now(),
	})
	if strings.Contains(out, "<script>") {
		t.Error("HTML body must escape user input")
	}
	if !strings.Contains(out, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("message body should be escaped")
	}
}
