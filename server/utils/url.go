// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"net/http"
	"strings"
)

// GetQueryParam retrieves the value of a query parameter by name.
//
// If the parameter is not present, it returns the provided default value or an empty string.
func GetQueryParam(r *http.Request, name string, defaultValue ...string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}

	return firstOrEmpty(defaultValue)
}

// GetFormValue retrieves the value of a form parameter by name.
//
// It calls r.ParseForm() and then reads r.FormValue(name).
// If the parameter is not present, it returns the provided default value or an empty string.
func GetFormValue(r *http.Request, name string, defaultValue ...string) string {
	if err := r.ParseForm(); err == nil {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}

	return firstOrEmpty(defaultValue)
}

// GetPathVar retrieves the value of a path variable by name.
func GetPathVar(r *http.Request, name string, defaultValue ...string) string {
	if v := r.PathValue(name); v != "" {
		return v
	}

	return firstOrEmpty(defaultValue)
}

func firstOrEmpty(values []string) string {
	if len(values) > 0 {
		return values[0]
	}

	return ""
}

// SanitizeReturnPath ensures that string s is a same-origin relative path (no scheme/host).
// Returns "" if the value is unsafe; callers should fallback to a known path.
func SanitizeReturnPath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Disallow absolute URLs and scheme-relative URLs to prevent open redirects.
	if strings.Contains(s, "://") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) {
		return ""
	}

	if !strings.HasPrefix(s, "/") {
		return ""
	}

	return s
}
