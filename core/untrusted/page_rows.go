// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cjnimes/Cookie/core/cookie"
)

// PageRowsLifetime is how long a page-rows preference lives on the client.
const PageRowsLifetime = 60 * 60 * 24 * 365 * 10 * time.Second

// PreferencePath is the default path preference cookies are scoped to.
const PreferencePath = "/"

// PreferenceSameSite is the default SameSite mode of preference cookies.
// Lax keeps them on top-level navigations from other sites.
const PreferenceSameSite = http.SameSiteLaxMode

const pageRowsDefault = 20

var pageRowsValues = []int{10, 20, 30, 40, 50}

// PageRowsValues returns the accepted page sizes in ascending order.
func PageRowsValues() []int {
	return slices.Clone(pageRowsValues)
}

// PageRowsDefaultValue returns the page size used in place of an invalid one.
func PageRowsDefaultValue() int {
	return pageRowsDefault
}

// PageRowsIsValid reports whether value is an accepted page size.
func PageRowsIsValid(value int) bool {
	return slices.Contains(pageRowsValues, value)
}

// PageRows returns the page-rows preference of moduleID, writing newValue first
// when it is positive.
//
// An invalid newValue is replaced by PageRowsDefaultValue rather than rejected.
// Written preferences are scoped to the store's preference path (root unless
// changed with ScopePreferences) and domain, and expire after PageRowsLifetime. Zero or negative values only read.
//
// The second result is false when no preference is stored, or when the stored
// value is not an integer.
func (s *Store) PageRows(moduleID string, newValue int) (int, bool) {
	name := string(cookie.PageRowsCookie(moduleID))

	if newValue > 0 {
		if !PageRowsIsValid(newValue) {
			log.Debug().
				Str("module", moduleID).
				Int("value", newValue).
				Msg("Replacing invalid page rows value with default")

			newValue = pageRowsDefault
		}

		s.Set(name, strconv.Itoa(newValue),
			cookie.WithExpires(s.now().Add(PageRowsLifetime)),
			cookie.WithPath(s.path),
			cookie.WithDomain(s.domain()),
			cookie.WithSameSite(s.sameSite),
		)
	}

	raw, ok := s.Get(name)
	if !ok {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}

	return value, true
}

// HasPageRows reports whether a page-rows preference cookie exists for moduleID.
func (s *Store) HasPageRows(moduleID string) bool {
	return s.Has(string(cookie.PageRowsCookie(moduleID)))
}

// ClearPageRows deletes the page-rows preference of every module in moduleIDs,
// matching the path and domain PageRows writes with.
func (s *Store) ClearPageRows(moduleIDs []string) {
	for _, name := range cookie.PageRowsCookies(moduleIDs) {
		s.destroy(string(name), cookie.WithPath(s.path), cookie.WithDomain(s.domain()))
	}
}
