// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL is a middleware that redirects URLs with a trailing slash
// (except root) to their canonical form.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL

	target.Path = strings.TrimRight(target.Path, "/")
	if target.Path == "" {
		target.Path = "/"
	}

	// Keep the redirect relative so it can never point at another host.
	target.Scheme = ""
	target.Host = ""
	target.RawPath = ""

	// A leading "//" would be read as a scheme-relative URL.
	target.Path = "/" + strings.TrimLeft(target.Path, "/")

	http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
}
