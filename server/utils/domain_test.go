// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cjnimes/Cookie/server/utils"
)

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		want string
	}{
		{"Plain domain", "example.com", "example.com"},
		{"Subdomain", "www.example.com", "example.com"},
		{"Deep subdomain with port", "a.b.example.com:8080", "example.com"},
		{"Multi-label suffix", "shop.example.co.uk", "example.co.uk"},
		{"Upper case", "WWW.Example.COM", "example.com"},
		{"Trailing dot", "www.example.com.", "example.com"},
		{"Localhost", "localhost:8282", ""},
		{"IPv4", "127.0.0.1:8282", ""},
		{"IPv6", "[::1]:8282", ""},
		{"Public suffix", "co.uk", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Host = tt.host

			assert.Equal(t, tt.want, utils.RegistrableDomain(r))
		})
	}
}

func TestRequestHost(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Host = "[2001:db8::1]:443"

	assert.Equal(t, "2001:db8::1", utils.RequestHost(r))
}
