// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"github.com/cjnimes/Cookie/core/cookie"
	"github.com/cjnimes/Cookie/server/utils"
)

// DomainFunc returns the domain that preference cookies are scoped to.
type DomainFunc func() string

// Store is a request-scoped view of the client's cookies.
//
// A Store is not safe for concurrent use; it belongs to the goroutine handling its request.
type Store struct {
	jar    map[string]string
	sink   cookie.Sink
	domain DomainFunc
	now    func() time.Time

	// path and sameSite scope preference cookies.
	path     string
	sameSite http.SameSite
}

// New returns a Store over a copy of jar that emits directives to sink.
//
// domain may be nil, in which case preference cookies are host-only.
func New(jar map[string]string, sink cookie.Sink, domain DomainFunc) *Store {
	local := maps.Clone(jar)
	if local == nil {
		local = make(map[string]string)
	}

	if domain == nil {
		domain = func() string { return "" }
	}

	return &Store{
		jar:      local,
		sink:     sink,
		domain:   domain,
		now:      time.Now,
		path:     PreferencePath,
		sameSite: PreferenceSameSite,
	}
}

// ScopePreferences sets the path and SameSite mode preference cookies are written
// and deleted with. An empty path or a zero sameSite keeps the current setting.
//
// Preferences already stored by clients under another path are not moved.
func (s *Store) ScopePreferences(path string, sameSite http.SameSite) {
	if path != "" {
		s.path = path
	}

	if sameSite != 0 {
		s.sameSite = sameSite
	}
}

// FromRequest returns a Store over the cookies of r that writes Set-Cookie headers to w.
//
// When domain is nil, the registrable domain of the request host is used.
func FromRequest(w http.ResponseWriter, r *http.Request, domain DomainFunc) *Store {
	if domain == nil {
		domain = func() string { return utils.RegistrableDomain(r) }
	}

	return New(ReadJar(r), cookie.NewResponseSink(w), domain)
}

// ReadJar collects the cookies sent with r into a name to value mapping.
//
// The first occurrence of a repeated name wins. Values are query-unescaped;
// values that fail to unescape are kept as sent.
func ReadJar(r *http.Request) map[string]string {
	jar := make(map[string]string)

	for _, c := range r.Cookies() {
		if _, seen := jar[c.Name]; seen {
			continue
		}

		value, err := url.QueryUnescape(c.Value)
		if err != nil {
			value = c.Value
		}

		jar[c.Name] = value
	}

	return jar
}

// Get returns the value of the cookie name and whether it is present.
func (s *Store) Get(name string) (string, bool) {
	value, ok := s.jar[name]

	return value, ok
}

// Has reports whether the cookie name is present.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)

	return ok
}

// Set emits a cookie directive for name and value.
//
// Without options the cookie is a session cookie with no path or domain, neither
// Secure nor HttpOnly. The value is passed through untouched: an empty value
// sets a live cookie holding "" and does not delete it. Use Destroy to delete.
func (s *Store) Set(name, value string, opts ...cookie.Option) {
	s.emit(cookie.NewDirective(name, value, opts...))
}

// Destroy forgets the cookie name and tells the client to delete it.
//
// Clients only delete a cookie whose path (and domain) match the ones it was set
// with, so callers must pass the path used when the cookie was created.
// A mismatch is not detected here: the client simply keeps its cookie.
func (s *Store) Destroy(name, path string) {
	s.destroy(name, cookie.WithPath(path))
}

func (s *Store) destroy(name string, opts ...cookie.Option) {
	s.emit(cookie.NewDirective(name, "", append(opts, cookie.WithExpires(cookie.DeletedAt))...))
}

func (s *Store) emit(d cookie.Directive) {
	s.sink.Emit(d)

	if d.IsExpired(s.now()) {
		delete(s.jar, d.Name)
	} else {
		s.jar[d.Name] = d.Value
	}

	log.Trace().
		Str("cookie", d.Name).
		Str("path", d.Path).
		Str("domain", d.Domain).
		Time("expires", d.ExpiresAt).
		Msg("Emitted cookie directive")
}

// Names returns the names of all present cookies in lexical order.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.jar))
}

// Debug writes a human-readable dump of every cookie in the store to w.
//
// The output is meant for diagnostics only and its format may change.
func (s *Store) Debug(w io.Writer) error {
	dump := make(yaml.MapSlice, 0, len(s.jar))

	for _, name := range s.Names() {
		dump = append(dump, yaml.MapItem{Key: name, Value: s.jar[name]})
	}

	out, err := yaml.Marshal(dump)
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write cookie dump: %w", err)
	}

	return nil
}
