// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	config "github.com/cjnimes/Cookie/configs"
)

func TestMain(m *testing.M) {
	config.Global.PageRows.Modules = []string{"orders", "customers"}
	config.Global.Development.InDevelopment = true
	config.Global.Response.Compression = true
	config.Global.Limiter.Enabled = false

	os.Exit(m.Run())
}

func serve(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRouter_IndexRedirects(t *testing.T) {
	t.Parallel()

	rr := serve(t, New(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/settings", rr.Header().Get("Location"))
}

func TestRouter_SettingsPage(t *testing.T) {
	t.Parallel()

	rr := serve(t, New(), httptest.NewRequest(http.MethodGet, "/settings", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rr.Header().Get(servertiming.HeaderKey), "user$GET$"))

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("form.page-rows").Length())
}

// A saved preference is reported by the API on the next request.
func TestRouter_SaveThenRead(t *testing.T) {
	t.Parallel()

	router := New()

	form := url.Values{"rows": {"40"}}
	req := httptest.NewRequest(http.MethodPost, "http://app.example.com/settings/page-rows/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := serve(t, router, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/settings?saved=orders", rr.Header().Get("Location"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "example.com", cookies[0].Domain)

	req = httptest.NewRequest(http.MethodGet, "http://app.example.com/api/page-rows", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})

	rr = serve(t, router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Equal(t, int64(40), gjson.Get(body, "orders").Int())
	assert.Equal(t, gjson.Null, gjson.Get(body, "customers").Type)
}

func TestRouter_Errors(t *testing.T) {
	t.Parallel()

	router := New()

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()

		rr := serve(t, router, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		doc, err := goquery.NewDocumentFromReader(rr.Body)
		require.NoError(t, err)
		assert.Equal(t, "404 Not Found", doc.Find("#status").Text())
	})

	t.Run("unknown module", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/settings/page-rows/invoices", strings.NewReader("rows=30"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := serve(t, router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("unknown API module", func(t *testing.T) {
		t.Parallel()

		rr := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/page-rows?module=invoices", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.True(t, gjson.Get(rr.Body.String(), "error").Exists())
	})

	t.Run("trailing slash", func(t *testing.T) {
		t.Parallel()

		rr := serve(t, router, httptest.NewRequest(http.MethodGet, "/settings/", nil))
		assert.Equal(t, http.StatusPermanentRedirect, rr.Code)
		assert.Equal(t, "/settings", rr.Header().Get("Location"))
	})
}

func TestRouter_DebugCookies(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/debug/cookies", nil)
	req.AddCookie(&http.Cookie{Name: "page_rows_orders", Value: "30"})

	rr := serve(t, New(), req)
	require.Equal(t, http.StatusOK, rr.Code)

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#dump").Text(), "page_rows_orders")
}
