// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	// Server configuration constants.
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	// Polling constants.
	retryCount  = 10
	dialTimeout = 250 * time.Millisecond
)

// httpTestCase defines a test case.
type httpTestCase struct {
	URL                string
	Method             string
	ExpectedStatusCode int

	// POST requests specific fields
	FormData url.Values
}

// setDefault sets the default values for the test case.
func (c *httpTestCase) setDefault() {
	if c.ExpectedStatusCode == 0 {
		c.ExpectedStatusCode = http.StatusOK
	}
}

// TestMain is used for global setup and teardown.
//
// It starts the server and waits for it to be available before running tests.
func TestMain(m *testing.M) {
	os.Setenv("COOKIESTORE_HOST", "127.0.0.1")
	os.Setenv("COOKIESTORE_PORT", "8282")
	os.Setenv("COOKIESTORE_PAGE_ROWS_MODULES", "orders,customers")

	go func() {
		if err := run(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for the server.
	if !waitForServerReady() {
		log.Fatalf("Server did not start in time")
	}

	os.Exit(m.Run())
}

// waitForServerReady polls the server until it's available or the retries are exhausted.
func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true // Server is up.
		}

		time.Sleep(dialTimeout)
	}

	return false
}

// TestBasicAllRoutes tests all basic routes of the server.
func TestBasicAllRoutes(t *testing.T) {
	t.Parallel()

	testCases := []httpTestCase{
		{URL: "/", Method: http.MethodGet},
		{URL: "/settings", Method: http.MethodGet},
		{URL: "/api/page-rows", Method: http.MethodGet},
		{URL: "/api/page-rows?module=orders", Method: http.MethodGet},
		{URL: "/api/page-rows?module=invoices", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{URL: "/missing", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{
			URL:                "/settings/page-rows/orders",
			Method:             http.MethodPost,
			FormData:           url.Values{"rows": {"nope"}},
			ExpectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.Method, tc.URL), func(t *testing.T) {
			t.Parallel()
			tc.setDefault()

			resp := makeRequest(t, http.DefaultClient, buildRequest(t, authority+tc.URL, tc.Method, tc.FormData))
			defer resp.Body.Close()

			assert.Equal(t, tc.ExpectedStatusCode, resp.StatusCode)
		})
	}
}

// TestPageRowsRoundTrip saves, reads back and resets a preference with a real cookie jar.
func TestPageRowsRoundTrip(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{Jar: jar}

	resp := makeRequest(t, client, buildRequest(t, authority+"/settings/page-rows/orders", http.MethodPost, url.Values{"rows": {"50"}}))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode) // after following the redirect

	assert.Equal(t, int64(50), gjson.Get(readAPI(t, client), "orders").Int())

	resp = makeRequest(t, client, buildRequest(t, authority+"/settings/reset", http.MethodPost, url.Values{}))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, gjson.Null, gjson.Get(readAPI(t, client), "orders").Type)
}

func readAPI(t *testing.T, client *http.Client) string {
	t.Helper()

	resp := makeRequest(t, client, buildRequest(t, authority+"/api/page-rows", http.MethodGet, nil))
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func buildRequest(t *testing.T, link, method string, form url.Values) *http.Request {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(context.TODO(), method, link, body)
	require.NoError(t, err)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return req
}

func makeRequest(t *testing.T, client *http.Client, req *http.Request) *http.Response {
	t.Helper()

	resp, err := client.Do(req)
	require.NoError(t, err)

	return resp
}
