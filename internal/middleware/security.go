// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// SecureHeaders adds security-related HTTP headers to every response.
// mediaOrigins are the extra origins images and videos may be loaded from,
// such as the public URL of the media bucket.
func SecureHeaders(mediaOrigins ...string) func(http.Handler) http.Handler {
	csp := contentSecurityPolicy(mediaOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "interest-cohort=()")
			h.Set("Content-Security-Policy", csp)

			next.ServeHTTP(w, r)
		})
	}
}

// contentSecurityPolicy allows inline styles, since every item carries its
// resolved style inline, but no inline script.
func contentSecurityPolicy(mediaOrigins []string) string {
	media := "'self' data: blob:"
	for _, o := range mediaOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			media += " " + o
		}
	}
	return strings.Join([]string{
		"default-src 'self'",
		"img-src " + media,
		"media-src " + media,
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"font-src 'self' https://fonts.gstatic.com",
		"script-src 'self'",
		"frame-ancestors 'self'",
	}, "; ")
}
