// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/mailer"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// Contact list pagination bounds.
const (
	defaultContactPageSize = 20
	maxContactPageSize     = 100
)

// mailTimeout bounds the background notification send.
const mailTimeout = 60 * time.Second

// contactRequest is the payload for POST /api/contact.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// contactResponse is a contact message as served to the admin client.
type contactResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toContactResponse(c store.Contact) contactResponse {
	resp := contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.RepliedAt.Valid {
		t := c.RepliedAt.Time
		resp.RepliedAt = &t
	}
	return resp
}

// SubmitContact validates and stores a contact form submission, then
// notifies the site owner by email in the background.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	submission := model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := submission.Validate(); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	now := time.Now().UTC()
	contact, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:      submission.Name,
		Email:     submission.Email,
		Subject:   submission.Subject,
		Message:   submission.Message,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("storing contact message failed", "error", err)
		WriteInternalError(w, "Failed to store message")
		return
	}

	h.hub.Broadcast(live.TypeNewContact, map[string]any{
		"id":      contact.ID,
		"name":    contact.Name,
		"subject": contact.Subject,
	})

	// Notification failures never fail the submission.
	go h.notifyContact(contact)

	WriteJSON(w, http.StatusCreated, map[string]any{
		"id":      contact.ID,
		"message": "Thank you for your message. I will get back to you soon.",
	})
}

// notifyContact emails the site owner about a new message.
func (h *Handler) notifyContact(contact store.Contact) {
	if !h.mail.Configured() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	err := h.mail.SendContactNotification(ctx, mailer.ContactNotification{
		Name:    contact.Name,
		Email:   contact.Email,
		Subject: contact.Subject,
		Message: contact.Message,
		SentAt:  contact.CreatedAt,
	})
	if err != nil {
		slog.Error("contact notification email failed", "contact_id", contact.ID, "error", err)
	}
}

// ListContacts serves contact messages for the admin client.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.IsValidContactStatus(status) {
		WriteBadRequest(w, "Unknown status filter")
		return
	}

	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultContactPageSize)
	if limit > maxContactPageSize {
		limit = maxContactPageSize
	}

	contacts, err := h.queries.ListContacts(r.Context(), store.ListContactsParams{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		slog.Error("listing contacts failed", "error", err)
		WriteInternalError(w, "Failed to list contacts")
		return
	}

	total, err := h.queries.CountContacts(r.Context(), status)
	if err != nil {
		slog.Error("counting contacts failed", "error", err)
		WriteInternalError(w, "Failed to list contacts")
		return
	}

	items := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		items = append(items, toContactResponse(c))
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"contacts":    items,
		"total":       total,
		"currentPage": page,
		"totalPages":  totalPages(total, limit),
	})
}

// GetContact serves a single contact message.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid contact id")
		return
	}

	contact, err := h.queries.GetContactByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Contact not found")
		return
	}
	if err != nil {
		slog.Error("loading contact failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load contact")
		return
	}

	WriteJSON(w, http.StatusOK, toContactResponse(contact))
}

// UpdateContactStatus transitions a contact message between statuses.
// Moving to "replied" stamps the reply time.
func (h *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid contact id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if !model.IsValidContactStatus(req.Status) {
		WriteBadRequest(w, "Unknown status")
		return
	}

	current, err := h.queries.GetContactByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Contact not found")
		return
	}
	if err != nil {
		slog.Error("loading contact failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to update contact")
		return
	}

	repliedAt := current.RepliedAt
	if req.Status == model.ContactStatusReplied {
		repliedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	updated, err := h.queries.UpdateContactStatus(r.Context(), store.UpdateContactStatusParams{
		ID:        id,
		Status:    req.Status,
		RepliedAt: repliedAt,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("updating contact status failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to update contact")
		return
	}

	WriteJSON(w, http.StatusOK, toContactResponse(updated))
}

// parsePositiveInt parses s as a positive integer, falling back to def.
func parsePositiveInt(s string, def int64) int64 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// totalPages computes page count for a total and page size.
func totalPages(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
