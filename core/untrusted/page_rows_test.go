// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRowsValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{10, 20, 30, 40, 50}, PageRowsValues())
	assert.Equal(t, 20, PageRowsDefaultValue())

	// Callers get their own copy.
	values := PageRowsValues()
	values[0] = 99
	assert.Equal(t, 10, PageRowsValues()[0])
}

func TestPageRowsIsValid(t *testing.T) {
	t.Parallel()

	for _, v := range []int{10, 20, 30, 40, 50} {
		assert.True(t, PageRowsIsValid(v), "PageRowsIsValid(%d)", v)
	}

	for _, v := range []int{0, 15, -10, 60, 999, 1} {
		assert.False(t, PageRowsIsValid(v), "PageRowsIsValid(%d)", v)
	}
}

func TestStore_PageRows_InvalidWritesDefault(t *testing.T) {
	t.Parallel()

	s, rec := newTestStore(t, nil)

	rows, ok := s.PageRows("orders", 999)
	require.True(t, ok)
	assert.Equal(t, 20, rows)

	d, ok := rec.Last("page_rows_orders")
	require.True(t, ok)
	assert.Equal(t, "20", d.Value)
}

func TestStore_PageRows_WriteThenRead(t *testing.T) {
	t.Parallel()

	s, rec := newTestStore(t, nil)

	rows, ok := s.PageRows("orders", 30)
	require.True(t, ok)
	assert.Equal(t, 30, rows)

	rows, ok = s.PageRows("orders", 0)
	require.True(t, ok)
	assert.Equal(t, 30, rows)

	require.Len(t, rec.Directives, 1)

	d := rec.Directives[0]
	assert.Equal(t, "page_rows_orders", d.Name)
	assert.Equal(t, "30", d.Value)
	assert.Equal(t, "/", d.Path)
	assert.Equal(t, "example.com", d.Domain)
	assert.False(t, d.Secure)
	assert.False(t, d.HTTPOnly)
	assert.Equal(t, fixedNow.Add(60*60*24*365*10*time.Second), d.ExpiresAt)
}

func TestStore_HasPageRows(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, nil)

	assert.False(t, s.HasPageRows("orders"))

	s.PageRows("orders", 40)

	assert.True(t, s.HasPageRows("orders"))
	assert.False(t, s.HasPageRows("users"))
}

func TestStore_PageRows_NonPositiveIsReadOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		jar      map[string]string
		newValue int
		wantRows int
		wantOK   bool
	}{
		{"negative, never set", nil, -5, 0, false},
		{"zero, never set", nil, 0, 0, false},
		{"negative, previously set", map[string]string{"page_rows_orders": "50"}, -5, 50, true},
		{"zero, previously set", map[string]string{"page_rows_orders": "10"}, 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, rec := newTestStore(t, tt.jar)

			rows, ok := s.PageRows("orders", tt.newValue)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRows, rows)
			assert.Empty(t, rec.Directives)
		})
	}
}

func TestStore_PageRows_StoredGarbage(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, map[string]string{"page_rows_orders": "lots"})

	_, ok := s.PageRows("orders", 0)
	assert.False(t, ok)
	assert.True(t, s.HasPageRows("orders"))
}

func TestStore_PageRows_StoredOutOfRange(t *testing.T) {
	t.Parallel()

	// Values are validated on write only; a tampered cookie reads back as sent.
	s, _ := newTestStore(t, map[string]string{"page_rows_orders": "15"})

	rows, ok := s.PageRows("orders", 0)
	assert.True(t, ok)
	assert.Equal(t, 15, rows)
}

func TestStore_ClearPageRows(t *testing.T) {
	t.Parallel()

	s, rec := newTestStore(t, map[string]string{"page_rows_orders": "10", "page_rows_users": "20", "other": "x"})

	s.ClearPageRows([]string{"orders", "users"})

	assert.False(t, s.HasPageRows("orders"))
	assert.False(t, s.HasPageRows("users"))
	assert.True(t, s.Has("other"))

	require.Len(t, rec.Directives, 2)

	for _, d := range rec.Directives {
		assert.Equal(t, "/", d.Path)
		assert.Equal(t, "example.com", d.Domain)
		assert.True(t, d.IsExpired(fixedNow))
	}
}

func TestStore_ScopePreferences(t *testing.T) {
	t.Parallel()

	s, rec := newTestStore(t, map[string]string{"page_rows_users": "10"})
	s.ScopePreferences("/app", http.SameSiteStrictMode)

	s.PageRows("orders", 40)
	s.ClearPageRows([]string{"users"})

	require.Len(t, rec.Directives, 2)

	written := rec.Directives[0]
	assert.Equal(t, "/app", written.Path)
	assert.Equal(t, http.SameSiteStrictMode, written.SameSite)

	cleared := rec.Directives[1]
	assert.Equal(t, "/app", cleared.Path)
	assert.True(t, cleared.IsExpired(fixedNow))
}

func TestStore_ScopePreferences_ZeroValuesKeepDefaults(t *testing.T) {
	t.Parallel()

	s, rec := newTestStore(t, nil)
	s.ScopePreferences("", 0)

	s.PageRows("orders", 10)

	d, ok := rec.Last("page_rows_orders")
	require.True(t, ok)
	assert.Equal(t, PreferencePath, d.Path)
	assert.Equal(t, PreferenceSameSite, d.SameSite)
}
