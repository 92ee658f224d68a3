// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cjnimes/Cookie/assets/views"
	"github.com/cjnimes/Cookie/server/request_context"
)

// ErrorPage renders an error page.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ctx := request_context.FromRequest(r)

	pageData := views.ErrorData{
		Title:      "Error",
		Error:      ctx.RequestError,
		StatusCode: ctx.StatusCode,
	}

	if err := views.Error(pageData).Render(r.Context(), w); err != nil {
		log.Err(err).Str("request_id", ctx.RequestID).Msg("Failed to render the error page")
	}
}
