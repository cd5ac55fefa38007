// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/visitor"
)

// recordTimeout bounds a visit recorded through the websocket, which has
// no request context to inherit from.
const recordTimeout = 10 * time.Second

// ServeWS returns the websocket endpoint handler. Browser connections are
// accepted only from the allowed origins; non-browser clients send no
// Origin header and pass.
func (h *Handler) ServeWS(allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, a := range allowedOrigins {
				if a == "*" || a == origin {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Debug("websocket upgrade failed", "error", err)
			return
		}

		ip := middleware.ClientIP(r)
		userAgent := r.UserAgent()

		client := live.NewClient(h.hub, conn, func(info live.VisitorInfo) {
			h.recordFromSocket(info, ip, userAgent)
		}, slog.Default())
		client.Start()
	}
}

// recordFromSocket records a visit announced over the websocket and pushes
// refreshed counters to everyone.
func (h *Handler) recordFromSocket(info live.VisitorInfo, ip, userAgent string) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	inserted, err := h.visitors.Record(ctx, visitor.Visit{
		SessionID: info.SessionID,
		IPAddress: ip,
		UserAgent: userAgent,
		Referrer:  info.Referrer,
		Page:      info.Page,
	})
	if err != nil {
		slog.Warn("recording websocket visit failed", "error", err)
		return
	}
	if !inserted {
		return
	}

	stats, err := h.visitors.Stats(ctx)
	if err != nil {
		slog.Warn("loading stats after websocket visit failed", "error", err)
		return
	}
	h.broadcastVisitorStats(stats)
	h.hub.Broadcast(live.TypeNewVisitor, map[string]string{"page": info.Page})
}
