// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application, the outbound
cookie directive, and the sinks that directives are emitted to.
*/
package cookie

// CookieName is the name of a cookie set by this application.
type CookieName string

// PageRowsPrefix prefixes every per-module page-rows preference cookie.
const PageRowsPrefix = "page_rows_"

// PageRowsCookie returns the cookie name holding the page-rows preference of moduleID.
//
// moduleID is used verbatim; callers choose identifiers that are valid cookie-name tokens.
func PageRowsCookie(moduleID string) CookieName {
	return CookieName(PageRowsPrefix + moduleID)
}

// PageRowsCookies returns the page-rows cookie names of every module in moduleIDs.
func PageRowsCookies(moduleIDs []string) []CookieName {
	names := make([]CookieName, 0, len(moduleIDs))

	for _, id := range moduleIDs {
		names = append(names, PageRowsCookie(id))
	}

	return names
}
