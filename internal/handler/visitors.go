// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/visitor"
)

// trackRequest is the payload for POST /api/visitor/track.
type trackRequest struct {
	SessionID string `json:"sessionId"`
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
}

// statsResponse extends the stored counts with the live online count.
type statsResponse struct {
	visitor.Stats
	OnlineUsers int `json:"onlineUsers"`
}

// TrackVisitor records a page visit and returns the updated counts.
func (h *Handler) TrackVisitor(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.SessionID == "" {
		WriteBadRequest(w, "sessionId is required")
		return
	}

	inserted, err := h.visitors.Record(r.Context(), visitor.Visit{
		SessionID: req.SessionID,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  req.Referrer,
		Page:      req.Page,
	})
	if err != nil {
		slog.Error("recording visit failed", "error", err)
		WriteInternalError(w, "Failed to record visit")
		return
	}

	stats, err := h.visitors.Stats(r.Context())
	if err != nil {
		slog.Error("loading visitor stats failed", "error", err)
		WriteInternalError(w, "Failed to load visitor stats")
		return
	}

	if inserted {
		h.broadcastVisitorStats(stats)
		h.hub.Broadcast(live.TypeNewVisitor, map[string]string{"page": req.Page})
	}

	WriteJSON(w, http.StatusOK, struct {
		Counted bool `json:"counted"`
		statsResponse
	}{
		Counted:       inserted,
		statsResponse: statsResponse{Stats: stats, OnlineUsers: h.hub.ClientCount()},
	})
}

// Stats serves the aggregate visitor snapshot.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.visitors.Stats(r.Context())
	if err != nil {
		slog.Error("loading visitor stats failed", "error", err)
		WriteInternalError(w, "Failed to load visitor stats")
		return
	}
	WriteJSON(w, http.StatusOK, statsResponse{Stats: stats, OnlineUsers: h.hub.ClientCount()})
}

// StatsLast7Days serves the 7-day visit series alone.
func (h *Handler) StatsLast7Days(w http.ResponseWriter, r *http.Request) {
	series, err := h.visitors.Last7Days(r.Context())
	if err != nil {
		slog.Error("loading 7-day series failed", "error", err)
		WriteInternalError(w, "Failed to load visit series")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"last7Days": series})
}

// broadcastVisitorStats pushes refreshed counters to websocket clients.
func (h *Handler) broadcastVisitorStats(stats visitor.Stats) {
	h.hub.Broadcast(live.TypeVisitorCount, stats.TodayVisitors)
	h.hub.Broadcast(live.TypeTotalVisitors, stats.TotalVisitors)
	h.hub.Broadcast(live.TypeUniqueToday, stats.UniqueToday)
}
