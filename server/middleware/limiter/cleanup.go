// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// lastCleanupAt holds the UnixNano time of the last cleanup run.
var lastCleanupAt atomic.Int64

// DoCleanup schedules a background sweep of expired limiters at most once
// per CleanupInterval.
func DoCleanup() {
	now := timeNow()

	last := lastCleanupAt.Load()
	if last == 0 {
		lastCleanupAt.CompareAndSwap(0, now.UnixNano())

		return
	}

	if now.Sub(time.Unix(0, last)) < CleanupInterval {
		return
	}

	if !lastCleanupAt.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	go func() {
		removed := cleanupExpiredLimiters()

		log.Debug().Time("start", now).Dur("dur", time.Since(now)).Int("removed", removed).Msg("limiter cleanup")
	}()
}
