// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
)

// redirectTo redirects requests to targetPath, keeping the query string.
//
// Example:   /?saved=orders   ->   /settings?saved=orders
func redirectTo(targetPath string, code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := targetPath
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		http.Redirect(w, r, target, code)
	}
}
