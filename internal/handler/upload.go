// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/cdn"
)

// maxBatchUploadFiles caps a multi-file upload request.
const maxBatchUploadFiles = 10

// UploadImage accepts one multipart image and proxies it to Cloudinary.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(cdn.MaxUploadBytes); err != nil {
		WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		WriteBadRequest(w, "Missing image file")
		return
	}
	defer func() { _ = file.Close() }()

	result, ok := h.uploadOne(w, r, file)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// UploadImages accepts up to maxBatchUploadFiles images in one request
// and reports per-file results; a bad file does not abort the batch.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBatchUploadFiles * cdn.MaxUploadBytes); err != nil {
		WriteBadRequest(w, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		WriteBadRequest(w, "Missing image files")
		return
	}
	if len(files) > maxBatchUploadFiles {
		WriteBadRequest(w, "Too many files in one request")
		return
	}

	type batchItem struct {
		Filename string            `json:"filename"`
		Result   *cdn.UploadResult `json:"result,omitempty"`
		Error    string            `json:"error,omitempty"`
	}

	items := make([]batchItem, 0, len(files))
	for _, header := range files {
		item := batchItem{Filename: header.Filename}

		file, err := header.Open()
		if err != nil {
			item.Error = "failed to read file"
			items = append(items, item)
			continue
		}
		result, err := h.uploadData(r, file)
		_ = file.Close()
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = result
		}
		items = append(items, item)
	}

	WriteJSON(w, http.StatusOK, map[string]any{"uploads": items})
}

// DeleteImage destroys an uploaded image by its Cloudinary public ID.
// Public IDs contain slashes, so the route uses a wildcard.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	if publicID == "" {
		WriteBadRequest(w, "Missing public id")
		return
	}

	if err := h.cdn.DeleteImage(r.Context(), publicID); err != nil {
		if errors.Is(err, cdn.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "cdn_not_configured", "Image uploads are not configured on this server")
			return
		}
		slog.Error("deleting image failed", "public_id", publicID, "error", err)
		WriteError(w, http.StatusBadGateway, "cdn_unavailable", "Failed to delete image")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

// uploadOne uploads a single file, writing the HTTP error itself on failure.
func (h *Handler) uploadOne(w http.ResponseWriter, r *http.Request, file multipart.File) (*cdn.UploadResult, bool) {
	result, err := h.uploadData(r, file)
	if err != nil {
		if errors.Is(err, cdn.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "cdn_not_configured", "Image uploads are not configured on this server")
			return nil, false
		}
		slog.Error("uploading image failed", "error", err)
		WriteBadRequest(w, err.Error())
		return nil, false
	}
	return result, true
}

func (h *Handler) uploadData(r *http.Request, file multipart.File) (*cdn.UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(file, cdn.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.New("failed to read file")
	}
	return h.cdn.UploadImage(r.Context(), data)
}
