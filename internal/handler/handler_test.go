// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/ai"
	"github.com/olegiv/folio-go/internal/cdn"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/mailer"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/visitor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHandler builds a handler over a temporary database with every
// optional integration unconfigured.
func newTestHandler(t *testing.T) (*Handler, *store.Queries) {
	t.Helper()

	f, err := os.CreateTemp("", "folio-handler-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := live.NewHub(testLogger())
	go hub.Run(ctx)

	geo, _ := geoip.NewLookup("")
	visitors := visitor.NewService(store.New(db), geo, nil, 0)

	h := New(db, visitors, hub,
		mailer.New("", 0, "", "", ""),
		ai.NewClient("", ""),
		cdn.NewClient("", "", ""),
	)
	return h, store.New(db)
}

// testRouter registers the public routes used by tests.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/visitor/track", h.TrackVisitor)
	r.Get("/api/stats", h.Stats)
	r.Get("/api/stats/last7days", h.StatsLast7Days)
	r.Post("/api/contact", h.SubmitContact)
	r.Get("/api/contacts", h.ListContacts)
	r.Get("/api/contacts/{id}", h.GetContact)
	r.Patch("/api/contacts/{id}", h.UpdateContactStatus)
	r.Get("/api/projects", h.ListProjects)
	r.Get("/api/blog", h.ListPosts)
	r.Get("/api/blog/{slug}", h.GetPost)
	r.Post("/api/ai/chat", h.AIChat)
	r.Get("/api/ai/health", h.AIHealth)
	r.Get("/api/health", h.Health)
	return r
}

func seedPost(t *testing.T, q *store.Queries, title, slug string, published bool) store.Post {
	t.Helper()
	now := time.Now().UTC()
	p, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Title:       title,
		Slug:        slug,
		Excerpt:     "excerpt",
		Content:     "# Heading\n\nSome **bold** text.",
		Author:      "Oleg",
		Category:    "Go",
		Tags:        `["go","web"]`,
		ReadTime:    3,
		Published:   published,
		PublishedAt: sql.NullTime{Time: now, Valid: published},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return p
}

func seedProject(t *testing.T, q *store.Queries, title string, featured bool, order int64) store.Project {
	t.Helper()
	now := time.Now().UTC()
	p, err := q.CreateProject(context.Background(), store.CreateProjectParams{
		Title:        title,
		Description:  "desc",
		Technologies: `["Go","SQLite"]`,
		Category:     "Backend",
		Featured:     featured,
		DisplayOrder: order,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return p
}
