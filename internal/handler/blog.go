// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/olegiv/folio-go/internal/store"
)

// Blog list pagination bounds.
const (
	defaultBlogPageSize = 10
	maxBlogPageSize     = 50
)

// htmlSanitizer strips dangerous markup from rendered post HTML.
var htmlSanitizer = bluemonday.UGCPolicy()

// postListItem is a post in the list payload; content is omitted there.
type postListItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags"`
	ReadTime    int64     `json:"readTime"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Views       int64     `json:"views"`
	PublishedAt time.Time `json:"publishedAt"`
}

// postDetail extends the list item with the raw markdown and rendered HTML.
type postDetail struct {
	postListItem
	Content     string `json:"content"`
	ContentHTML string `json:"contentHtml"`
}

func toPostListItem(p store.Post) postListItem {
	item := postListItem{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Author:   p.Author,
		Category: p.Category,
		Tags:     decodeStringArray(p.Tags),
		ReadTime: p.ReadTime,
		ImageURL: p.ImageURL,
		Views:    p.Views,
	}
	if p.PublishedAt.Valid {
		item.PublishedAt = p.PublishedAt.Time
	} else {
		item.PublishedAt = p.CreatedAt
	}
	return item
}

// ListPosts serves published posts newest first with pagination metadata.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")

	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), defaultBlogPageSize)
	if limit > maxBlogPageSize {
		limit = maxBlogPageSize
	}

	posts, err := h.queries.ListPublishedPosts(r.Context(), store.ListPublishedPostsParams{
		Category: category,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		slog.Error("listing posts failed", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}

	total, err := h.queries.CountPublishedPosts(r.Context(), category)
	if err != nil {
		slog.Error("counting posts failed", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}

	items := make([]postListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostListItem(p))
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":       items,
		"total":       total,
		"currentPage": page,
		"totalPages":  totalPages(total, limit),
	})
}

// GetPost resolves a post by slug and serves it with rendered HTML.
//
// Resolution tries the exact slug, then a case-insensitive match, then the
// percent-decoded form. Each successful fetch bumps the view counter, so
// repeated reads of the same post count as repeated views.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.resolvePost(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		h.writePostNotFound(r.Context(), w, slug)
		return
	}
	if err != nil {
		slog.Error("loading post failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load post")
		return
	}

	if err := h.queries.IncrementPostViews(r.Context(), post.ID); err != nil {
		slog.Warn("incrementing post views failed", "id", post.ID, "error", err)
	} else {
		post.Views++
	}

	WriteJSON(w, http.StatusOK, postDetail{
		postListItem: toPostListItem(post),
		Content:      post.Content,
		ContentHTML:  renderMarkdown(post.Content),
	})
}

// resolvePost looks a slug up exactly, then case-insensitively, then after
// percent-decoding.
func (h *Handler) resolvePost(ctx context.Context, slug string) (store.Post, error) {
	post, err := h.queries.GetPublishedPostBySlug(ctx, slug)
	if err == nil || !errors.Is(err, sql.ErrNoRows) {
		return post, err
	}

	post, err = h.queries.GetPublishedPostBySlugFold(ctx, slug)
	if err == nil || !errors.Is(err, sql.ErrNoRows) {
		return post, err
	}

	if decoded, decErr := url.PathUnescape(slug); decErr == nil && decoded != slug {
		return h.queries.GetPublishedPostBySlugFold(ctx, decoded)
	}
	return store.Post{}, sql.ErrNoRows
}

// writePostNotFound answers 404 with the slugs that do exist, so the client
// can offer corrections.
func (h *Handler) writePostNotFound(ctx context.Context, w http.ResponseWriter, slug string) {
	slugs, err := h.queries.ListPublishedSlugs(ctx)
	if err != nil {
		slog.Warn("listing slugs for 404 payload failed", "error", err)
		slugs = []string{}
	}
	if slugs == nil {
		slugs = []string{}
	}
	WriteJSON(w, http.StatusNotFound, map[string]any{
		"error":          "Post not found",
		"requestedSlug":  slug,
		"availableSlugs": slugs,
	})
}

// renderMarkdown converts post markdown to sanitized HTML.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		slog.Warn("rendering markdown failed", "error", err)
		return ""
	}
	return string(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}
