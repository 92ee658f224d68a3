// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"testing"
	"time"

	config "github.com/cjnimes/Cookie/configs"
)

// testConfigMutex serializes tests that mutate global package state.
var testConfigMutex sync.Mutex

// mockTimeProvider maintains a controllable current time for testing.
type mockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.currentTime
}

// Sleep advances the mock current time by the specified duration.
func (m *mockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentTime = m.currentTime.Add(d)
}

// setupLimiterTest enables the limiter with the given rate and burst, hooks
// timeNow to a mock clock and clears all limiters.
//
// Everything is restored when the test completes.
//
// NOTE: the global test lock is held for the whole test. Do not call
// setupLimiterTest again in subtests; re-entering it would deadlock.
func setupLimiterTest(t *testing.T, rps, burst int) *mockTimeProvider {
	t.Helper()
	testConfigMutex.Lock()

	origConfig := config.Global
	origTimeNow := timeNow

	config.Global.Limiter.Enabled = true
	config.Global.Limiter.RequestsPerSecond = rps
	config.Global.Limiter.Burst = burst

	mockTime := &mockTimeProvider{currentTime: time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)}
	timeNow = mockTime.Now

	limiters.Clear()
	lastCleanupAt.Store(0)

	t.Cleanup(func() {
		timeNow = origTimeNow
		config.Global = origConfig

		limiters.Clear()
		lastCleanupAt.Store(0)

		testConfigMutex.Unlock()
	})

	return mockTime
}
