// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/cjnimes/Cookie/configs"
)

func TestSetResponseHeaders(t *testing.T) {
	t.Parallel()

	handler := Wrap(SetResponseHeaders, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.Equal(t, config.BuildVersion, rr.Header().Get("Cookiestore-Version"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestCompress(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("page rows preference ", 200)

	handler := Wrap(Compress, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)

	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
}

func TestCompress_NotAccepted(t *testing.T) {
	t.Parallel()

	handler := Wrap(Compress, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 4096))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, 4096, rr.Body.Len())
}

func TestWithServerTiming(t *testing.T) {
	t.Parallel()

	handler := Wrap(WithServerTiming, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := servertiming.FromContext(r.Context())
		require.NotNil(t, header)

		header.NewMetric("handler").Start().Stop()

		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rr.Header().Get(servertiming.HeaderKey), "handler")
}
