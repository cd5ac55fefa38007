// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth requires a Bearer token matching the configured admin token.
// With no token configured the protected endpoints are unavailable and
// answer 503 rather than letting everyone in.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				WriteError(w, http.StatusServiceUnavailable, "admin_disabled", "Admin endpoints are not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
