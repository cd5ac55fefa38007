// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the portfolio API.
package middleware

import (
	"net/http"
	"strings"
)

// corsMaxAge is the preflight cache lifetime in seconds.
const corsMaxAge = "3600"

// CORS returns a middleware that adds CORS headers for allowed origins
// and answers preflight requests.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if isOriginAllowed(origin, allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")

				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
					w.Header().Set("Access-Control-Max-Age", corsMaxAge)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks if an origin matches the allowed origins list.
// An entry like "https://*.vercel.app" matches any subdomain, so preview
// deployments are allowed without listing each one.
func isOriginAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" {
			return true
		}
		if scheme, host, ok := strings.Cut(a, "://*."); ok {
			suffix := "." + host
			if strings.HasPrefix(origin, scheme+"://") &&
				strings.HasSuffix(strings.ToLower(origin), suffix) {
				return true
			}
			continue
		}
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
