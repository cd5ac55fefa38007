// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/version"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// Health reports service liveness, database connectivity and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Version:  version.Get().Version,
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
		Database: "ok",
	}

	statusCode := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "error"
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, statusCode, resp)
}
