// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/store"
)

// projectResponse is a project as served to clients.
type projectResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	Technologies    []string  `json:"technologies"`
	Category        string    `json:"category"`
	GithubURL       string    `json:"githubUrl,omitempty"`
	LiveURL         string    `json:"liveUrl,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Featured        bool      `json:"featured"`
	DisplayOrder    int64     `json:"displayOrder"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toProjectResponse(p store.Project) projectResponse {
	return projectResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Technologies:    decodeStringArray(p.Technologies),
		Category:        p.Category,
		GithubURL:       p.GithubURL,
		LiveURL:         p.LiveURL,
		ImageURL:        p.ImageURL,
		Featured:        p.Featured,
		DisplayOrder:    p.DisplayOrder,
		CreatedAt:       p.CreatedAt,
	}
}

// ListProjects serves active projects, optionally filtered by category or
// restricted to featured ones.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	projects, err := h.queries.ListActiveProjects(r.Context(), store.ListActiveProjectsParams{
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
	})
	if err != nil {
		slog.Error("listing projects failed", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}

	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"projects": items,
		"total":    len(items),
	})
}

// decodeStringArray parses a stored JSON string array, tolerating bad data.
func decodeStringArray(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}
