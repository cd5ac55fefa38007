// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// hstsMaxAge is one year in seconds.
const hstsMaxAge = 31536000

// SecurityHeaders adds baseline security headers to every response.
// HSTS is skipped in development where the server runs over plain HTTP.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	hsts := "max-age=" + strconv.Itoa(hstsMaxAge) + "; includeSubDomains"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if !isDevelopment {
				w.Header().Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}
