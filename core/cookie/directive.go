// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cookie

import (
	"net/http"
	"time"
)

// DeletedAt is the expiration handed to clients for cookies that must be removed.
var DeletedAt = time.Unix(1, 0).UTC()

// Directive is an outbound instruction telling the client how to store or remove a cookie.
//
// A Directive is built, emitted once and then discarded.
type Directive struct {
	Name  string
	Value string

	// ExpiresAt is the absolute expiration. The zero value marks a session cookie,
	// which the client discards when its session ends.
	ExpiresAt time.Time

	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool

	// SameSite is left out of the Set-Cookie header when zero.
	SameSite http.SameSite
}

// IsSession reports whether the directive describes a session cookie.
func (d Directive) IsSession() bool {
	return d.ExpiresAt.IsZero()
}

// IsExpired reports whether the directive tells the client to delete the cookie at now.
func (d Directive) IsExpired(now time.Time) bool {
	return !d.IsSession() && !d.ExpiresAt.After(now)
}

// HTTPCookie converts the directive into an http.Cookie as of now.
//
// Max-Age is derived from ExpiresAt so that clients ignoring Expires behave the same.
// The value is written as given; escaping for the wire is the caller's concern.
func (d Directive) HTTPCookie(now time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     d.Name,
		Value:    d.Value,
		Path:     d.Path,
		Domain:   d.Domain,
		Secure:   d.Secure,
		HttpOnly: d.HTTPOnly,
		SameSite: d.SameSite,
	}

	switch {
	case d.IsSession():
	case d.IsExpired(now):
		c.Expires = d.ExpiresAt
		c.MaxAge = -1
	default:
		c.Expires = d.ExpiresAt
		c.MaxAge = int(d.ExpiresAt.Sub(now).Round(time.Second) / time.Second)
	}

	return c
}

// Option adjusts a Directive before it is emitted.
type Option func(*Directive)

// WithExpires sets an absolute expiration. The zero time keeps a session cookie.
func WithExpires(t time.Time) Option {
	return func(d *Directive) { d.ExpiresAt = t }
}

// WithPath scopes the cookie to path.
func WithPath(path string) Option {
	return func(d *Directive) { d.Path = path }
}

// WithDomain scopes the cookie to domain.
func WithDomain(domain string) Option {
	return func(d *Directive) { d.Domain = domain }
}

// WithSecure restricts the cookie to secure connections.
func WithSecure(secure bool) Option {
	return func(d *Directive) { d.Secure = secure }
}

// WithHTTPOnly hides the cookie from client-side scripts.
func WithHTTPOnly(httpOnly bool) Option {
	return func(d *Directive) { d.HTTPOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(s http.SameSite) Option {
	return func(d *Directive) { d.SameSite = s }
}

// NewDirective builds a session cookie directive for name and value and applies opts in order.
func NewDirective(name, value string, opts ...Option) Directive {
	d := Directive{Name: name, Value: value}

	for _, opt := range opts {
		opt(&d)
	}

	return d
}
