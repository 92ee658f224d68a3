// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cookie

import (
	"net/http"
	"net/url"
	"slices"
	"time"
)

// Sink receives outbound cookie directives.
type Sink interface {
	Emit(d Directive)
}

// ResponseSink writes directives as Set-Cookie headers on an HTTP response.
//
// Values are query-escaped, so any string survives the round trip through the client.
type ResponseSink struct {
	w   http.ResponseWriter
	now func() time.Time
}

// NewResponseSink returns a ResponseSink writing to w.
func NewResponseSink(w http.ResponseWriter) *ResponseSink {
	return &ResponseSink{w: w, now: time.Now}
}

// Emit appends a Set-Cookie header for d.
//
// Headers added after the response status was written are silently lost, as with http.SetCookie.
func (s *ResponseSink) Emit(d Directive) {
	c := d.HTTPCookie(s.now())
	c.Value = url.QueryEscape(c.Value)

	http.SetCookie(s.w, c)
}

// Recorder is a Sink that keeps every emitted directive in order.
//
// It is used wherever directives must be inspected instead of sent, mostly in tests.
type Recorder struct {
	Directives []Directive
}

// Emit records d.
func (r *Recorder) Emit(d Directive) {
	r.Directives = append(r.Directives, d)
}

// Last returns the most recently recorded directive for name.
func (r *Recorder) Last(name string) (Directive, bool) {
	for _, d := range slices.Backward(r.Directives) {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}
