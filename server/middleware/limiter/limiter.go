// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	config "github.com/cjnimes/Cookie/configs"
)

const (
	LimiterExpiryDuration = time.Hour       // How long to keep limiters in memory before cleanup.
	CleanupInterval       = 5 * time.Minute // Interval between limiter cleanup runs.

	ipv4Prefix = 24
	ipv6Prefix = 64
)

var (
	limiters sync.Map   // In-memory storage for rate limiters.
	timeNow  = time.Now // Wrapper for time.Now, which allows us to mock it in tests.
)

// limiterWrapper holds a rate limiter and additional metadata.
//
// Limiters are associated with an IP network and persist in the limiters sync.Map.
type limiterWrapper struct {
	limiter    *rate.Limiter
	network    string     // Associated network identifier
	lastAccess time.Time  // Last time limiter was accessed
	mu         sync.Mutex // mutex for operations on this limiter
}

// Evaluate is a middleware that rejects state-changing requests from networks
// that exceeded their budget with 429 Too Many Requests.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !config.Global.Limiter.Enabled || isSafeMethod(r.Method) {
		next.ServeHTTP(w, r)

		return
	}

	DoCleanup()

	networkStr := clientNetwork(r)

	limWrapper := getOrCreateLimiter(networkStr)
	if reason := checkRateLimit(limWrapper, networkStr); reason != "" {
		w.Header().Set("Retry-After", "1")
		w.Header().Set("Cache-Control", "no-store")
		http.Error(w, reason, http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// clientNetwork returns the network of the client that sent r.
//
// Requests whose client IP can't be parsed share a single bucket.
func clientNetwork(r *http.Request) string {
	rawIP := net.ParseIP(getClientIP(r))
	if rawIP == nil {
		return "unknown"
	}

	return getNetwork(rawIP, ipv4Prefix, ipv6Prefix).String()
}

// checkRateLimit attempts to consume 1 token from the limiterWrapper.
//
// Returns an empty string if the request is allowed, or a non-empty string with
// the reason if the request is blocked due to rate limiting.
func checkRateLimit(limiter *limiterWrapper, networkStr string) string {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.lastAccess = timeNow()

	if !limiter.limiter.AllowN(limiter.lastAccess, 1) {
		log.Warn().
			Str("network", networkStr).
			Msg("Rate limit exceeded")

		return "Rate limit exceeded"
	}

	return ""
}

// getOrCreateLimiter returns the limiterWrapper for the given network,
// creating one from the configured rate and burst if none exists.
func getOrCreateLimiter(networkStr string) *limiterWrapper {
	if limWrapper, found := loadLimiterFromMemory(networkStr); found {
		return limWrapper
	}

	limWrapper := newLimiterWrapper(
		float64(config.Global.Limiter.RequestsPerSecond),
		config.Global.Limiter.Burst,
		networkStr,
	)

	actual, _ := limiters.LoadOrStore(networkStr, limWrapper)
	if stored, ok := actual.(*limiterWrapper); ok {
		return stored
	}

	return limWrapper
}

// loadLimiterFromMemory tries to load from memory a limiterWrapper
// for a given network.
func loadLimiterFromMemory(network string) (*limiterWrapper, bool) {
	value, ok := limiters.Load(network)
	if !ok {
		return nil, false
	}

	limWrapper, ok := value.(*limiterWrapper)
	if !ok {
		return nil, false
	}

	limWrapper.mu.Lock()
	limWrapper.lastAccess = timeNow()
	limWrapper.mu.Unlock()

	return limWrapper, true
}

func newLimiterWrapper(rateLim float64, burstLim int, network string) *limiterWrapper {
	return &limiterWrapper{
		limiter:    rate.NewLimiter(rate.Limit(rateLim), burstLim),
		network:    network,
		lastAccess: timeNow(),
	}
}

// cleanupExpiredLimiters removes limiters that haven't been accessed for the expiry duration.
func cleanupExpiredLimiters() int {
	now := timeNow()

	var keysToDelete []any

	// Collect keys to delete in a slice to avoid deleting during Range()
	limiters.Range(func(key, value any) bool {
		limWrapper, ok := value.(*limiterWrapper)
		if !ok {
			keysToDelete = append(keysToDelete, key)

			return true
		}

		limWrapper.mu.Lock()
		lastAccess := limWrapper.lastAccess
		limWrapper.mu.Unlock()

		if now.Sub(lastAccess) > LimiterExpiryDuration {
			keysToDelete = append(keysToDelete, key)
		}

		return true
	})

	for _, key := range keysToDelete {
		limiters.Delete(key)
	}

	if len(keysToDelete) > 0 {
		log.Info().Int("count", len(keysToDelete)).
			Msg("Cleaned up expired limiters")
	}

	return len(keysToDelete)
}
