// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the JSON API handlers for the portfolio service.
package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/ai"
	"github.com/olegiv/folio-go/internal/cdn"
	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/mailer"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/visitor"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	visitors  *visitor.Service
	hub       *live.Hub
	mail      *mailer.Mailer
	ai        *ai.Client
	cdn       *cdn.Client
	startedAt time.Time
}

// New creates an API handler.
func New(db *sql.DB, visitors *visitor.Service, hub *live.Hub, mail *mailer.Mailer, aiClient *ai.Client, cdnClient *cdn.Client) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		visitors:  visitors,
		hub:       hub,
		mail:      mail,
		ai:        aiClient,
		cdn:       cdnClient,
		startedAt: time.Now(),
	}
}

// ErrorResponse is the standard API error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// decodeJSON decodes a bounded JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
