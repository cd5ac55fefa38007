// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/folio-go/internal/ai"
)

// AIChat answers a visitor question through the assistant persona.
func (h *Handler) AIChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Question == "" {
		WriteBadRequest(w, "question is required")
		return
	}
	if len(req.Question) > ai.MaxChatQuestionLen {
		WriteBadRequest(w, "question is too long")
		return
	}

	text, ok := h.generate(w, r, ai.ChatPrompt(req.Question, req.Context))
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"response": text})
}

// AIAnalyzeResume critiques a resume text.
func (h *Handler) AIAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResumeText string `json:"resumeText"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.ResumeText == "" {
		WriteBadRequest(w, "resumeText is required")
		return
	}
	if len(req.ResumeText) > ai.MaxResumeLen {
		WriteBadRequest(w, "resumeText is too long")
		return
	}

	text, ok := h.generate(w, r, ai.ResumePrompt(req.ResumeText))
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"analysis": text})
}

// AISummarizeBlog produces a short summary of blog content.
func (h *Handler) AISummarizeBlog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Content == "" {
		WriteBadRequest(w, "content is required")
		return
	}
	if len(req.Content) > ai.MaxBlogContentLen {
		WriteBadRequest(w, "content is too long")
		return
	}

	text, ok := h.generate(w, r, ai.SummarizePrompt(req.Content))
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"summary": text})
}

// AIRecommendations suggests skills to learn next.
func (h *Handler) AIRecommendations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skills []string `json:"skills"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if len(req.Skills) == 0 {
		WriteBadRequest(w, "skills is required")
		return
	}

	text, ok := h.generate(w, r, ai.RecommendationsPrompt(req.Skills))
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"recommendations": text})
}

// AIHealth reports whether the AI bridge is usable.
func (h *Handler) AIHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"configured": h.ai.Configured(),
		"keyPrefix":  h.ai.KeyPrefix(),
		"models":     h.ai.Models(),
	})
}

// generate runs the prompt through the model chain and maps failures to
// HTTP errors. It reports whether a response may still be written.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request, prompt string) (string, bool) {
	text, err := h.ai.Generate(r.Context(), prompt)
	if err == nil {
		return text, true
	}

	if errors.Is(err, ai.ErrNotConfigured) {
		WriteError(w, http.StatusServiceUnavailable, "ai_not_configured", "AI features are not configured on this server")
		return "", false
	}

	slog.Error("ai generation failed", "error", err)
	switch ai.Classify(err) {
	case ai.KindAuth:
		WriteError(w, http.StatusBadGateway, "ai_auth_failed", err.Error())
	case ai.KindQuotaHard:
		WriteError(w, http.StatusTooManyRequests, "ai_rate_limited", "AI quota exceeded, try again later")
	default:
		WriteError(w, http.StatusBadGateway, "ai_unavailable", "AI generation failed, try again later")
	}
	return "", false
}
