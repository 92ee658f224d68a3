// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/core/audit"
	"github.com/cjnimes/Cookie/server/request_context"
	"github.com/cjnimes/Cookie/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// It operates as follows:
//  1. It times the request for logging purposes.
//  2. It wraps the execution of the given handler, which has the signature
//     `func(w http.ResponseWriter, r *http.Request) error`. The handler's
//     output is buffered using an httptest.ResponseRecorder.
//  3. Any error returned by the handler is stored in the request context.
//
// After the handler runs, it decides on the final response:
//   - If the handler returns an error without writing an HTTP error status
//     code (i.e., status < 400), it's treated as an unhandled internal error.
//     The buffered response is discarded, and a generic 500 Internal Server Error
//     page is rendered.
//   - If the handler wrote a 404 Not Found status, the buffered response is
//     also discarded and replaced with the generic error page.
//   - In all other cases (e.g., a successful response), the buffered response
//     is written to the client.
//
// Cookies set through the request's cookie store bypass the buffer and are
// sent in every case.
//
// Finally, it logs the completed request details (status, duration, error, etc.)
// via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		// Execute the handler, capturing its output and any returned error.
		ctx.RequestError = handler(recorder, r)

		// End before writing so the Server-Timing metric carries the duration.
		span.End()

		switch {
		case (ctx.RequestError != nil && recorder.Code < http.StatusBadRequest) || (recorder.Code == http.StatusNotFound):
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			} else {
				ctx.StatusCode = http.StatusInternalServerError
			}

			w.WriteHeader(ctx.StatusCode)
			routes.ErrorPage(w, r) // ErrorPage uses ctx.RequestError and ctx.StatusCode

		default:
			// This is a successful response or a handled error. We trust the recorder's output.
			ctx.StatusCode = recorder.Code
			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			span.Size = recorder.Body.Len()

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
