// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync"

	config "github.com/cjnimes/Cookie/configs"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Cookiestore-Version and Cookiestore-Revision are added dynamically in SetResponseHeaders.
	//
	// NOTE: we intentionally don't set CORP or HSTS headers.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"no-referrer"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Permissions-Policy":      {strings.Join(defaultPermissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join(baseCSP, "; ") + ";"},
	}

	// baseCSP defines the Content-Security-Policy directives.
	baseCSP = []string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"script-src 'none'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	// Default to only storing in the browser cache and forcing revalidation.
	// Handlers may override this.
	headers.Set("Cache-Control", "private, no-cache")

	headers.Set("Cookiestore-Version", config.BuildVersion)
	headers.Set("Cookiestore-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

var firstDevResponse sync.Once

// clear cache in development
func invalidateCacheInDevelopment(headers http.Header) {
	firstDevResponse.Do(func() {
		headers.Set("Clear-Site-Data", `"cache"`)
	})
}
