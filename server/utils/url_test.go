// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cjnimes/Cookie/server/utils"
)

func TestSanitizeReturnPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Relative path", "/settings", "/settings"},
		{"Path with query", "/settings?tab=rows", "/settings?tab=rows"},
		{"Surrounding whitespace", "  /settings  ", "/settings"},
		{"Empty", "", ""},
		{"Absolute URL", "https://evil.test/", ""},
		{"Scheme-relative URL", "//evil.test/", ""},
		{"Backslash trick", `/\evil.test`, ""},
		{"Not rooted", "settings", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := utils.SanitizeReturnPath(tt.input); got != tt.expected {
				t.Errorf("utils.SanitizeReturnPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetFormValue(t *testing.T) {
	t.Parallel()

	form := url.Values{"rows": {"30"}}
	r := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if got := utils.GetFormValue(r, "rows"); got != "30" {
		t.Errorf("utils.GetFormValue() = %q, want %q", got, "30")
	}

	if got := utils.GetFormValue(r, "missing", "fallback"); got != "fallback" {
		t.Errorf("utils.GetFormValue() = %q, want %q", got, "fallback")
	}
}

func TestGetQueryParam(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/page-rows?module=orders", nil)

	if got := utils.GetQueryParam(r, "module"); got != "orders" {
		t.Errorf("utils.GetQueryParam() = %q, want %q", got, "orders")
	}

	if got := utils.GetQueryParam(r, "missing"); got != "" {
		t.Errorf("utils.GetQueryParam() = %q, want empty", got)
	}
}
