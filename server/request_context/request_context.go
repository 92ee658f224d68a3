// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requestcontext provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"github.com/cjnimes/Cookie/core/cookie"
	"github.com/cjnimes/Cookie/core/idgen"
	"github.com/cjnimes/Cookie/core/untrusted"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// It lives for a single HTTP request and is owned by the goroutine serving it.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any critical error encountered during request processing.
	//
	// Automatically populated by middleware.CatchError when handlers return errors,
	// which interrupts normal response handling and renders an error page instead.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// Cookies is the cookie store of this request.
	Cookies *untrusted.Store
}

// requestContextKeyType defines a unique type for a RequestContext key.
type requestContextKeyType struct{}

// requestContextKey is a unique key used to access RequestContext
// values from a context.Context.
var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context.
//
// The cookie store reads the cookies of r and writes Set-Cookie headers to w.
// domain scopes preference cookies; nil uses the registrable domain of r.
//
// This is called once per request, early in the middleware chain.
func WithRequestContext(ctx context.Context, w http.ResponseWriter, r *http.Request, domain untrusted.DomainFunc) context.Context {
	rc := RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		Cookies:    untrusted.FromRequest(w, r, domain),
	}

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a zero-value instance whose cookie store is
// empty and discards its writes.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{Cookies: untrusted.New(nil, &cookie.Recorder{}, nil)}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
//
// Prefer this in handlers that have access to the *http.Request object.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
