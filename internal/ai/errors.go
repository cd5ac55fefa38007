// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
)

// ErrNotConfigured is returned when no API key is configured.
var ErrNotConfigured = errors.New("ai: no API key configured; set FOLIO_GEMINI_API_KEY")

// Kind classifies a failed model attempt and decides the fallback behavior.
type Kind int

const (
	// KindOther is an unclassified upstream failure; try the next model and
	// remember this error in case the whole chain fails.
	KindOther Kind = iota
	// KindModelNotFound means the model name is unknown to the API; try the next one.
	KindModelNotFound
	// KindAuth means the key is invalid or lacks permission; retrying other
	// models cannot help, abort with guidance.
	KindAuth
	// KindQuotaFreeTier means the free-tier quota for this model is exhausted;
	// another model may still have quota, so try the next one.
	KindQuotaFreeTier
	// KindQuotaHard means the whole key is rate limited; abort.
	KindQuotaHard
)

// keyGuidance is appended to auth failures so the operator knows what to check.
const keyGuidance = "verify FOLIO_GEMINI_API_KEY is valid and has the Generative Language API enabled"

// Classify maps an attempt error to a Kind. Dispatch is on the HTTP status
// code of the API error; the response body is only consulted to tell
// free-tier quota exhaustion apart from hard rate limiting.
func Classify(err error) Kind {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return KindOther
	}

	switch apiErr.StatusCode {
	case http.StatusNotFound:
		return KindModelNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		if isFreeTierQuota(apiErr) {
			return KindQuotaFreeTier
		}
		return KindQuotaHard
	default:
		return KindOther
	}
}

// isFreeTierQuota reports whether a 429 names a per-model free-tier quota.
func isFreeTierQuota(apiErr *openai.Error) bool {
	body := apiErr.Message
	if raw := apiErr.RawJSON(); raw != "" {
		body = raw
	}
	return strings.Contains(body, "free_tier") || strings.Contains(body, "FreeTier")
}
