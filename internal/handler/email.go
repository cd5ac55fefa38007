// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/folio-go/internal/mailer"
)

// MailConfig reports whether outgoing mail is configured, for diagnostics.
func (h *Handler) MailConfig(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"configured": h.mail.Configured(),
	})
}

// SendTestMail sends a test email to the configured recipient.
func (h *Handler) SendTestMail(w http.ResponseWriter, r *http.Request) {
	if err := h.mail.SendTest(r.Context()); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "mail_not_configured", "SMTP is not configured on this server")
			return
		}
		slog.Error("test mail failed", "error", err)
		WriteError(w, http.StatusBadGateway, "mail_failed", "Failed to send test email: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Test email sent"})
}
