// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cjnimes/Cookie/assets/views"
	"github.com/cjnimes/Cookie/server/request_context"
)

// CookiesDebugPage dumps every cookie of the request.
//
// Only registered in development.
func CookiesDebugPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	var dump strings.Builder
	if err := request_context.FromRequest(r).Cookies.Debug(&dump); err != nil {
		return fmt.Errorf("failed to dump cookies: %w", err)
	}

	return views.CookieDump(dump.String()).Render(r.Context(), w)
}
