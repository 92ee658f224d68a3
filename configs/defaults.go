// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// Listener defaults, applied when no unix socket is configured.
const (
	DefaultHost = "localhost"
	DefaultPort = "8383"
)

const (
	defaultLimiterRequestsPerSecond = 5
	defaultLimiterBurst             = 10
)

// defaultPageRowsModules are the modules shown on the settings page unless configured.
var defaultPageRowsModules = []string{"orders", "customers", "products"}

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	// Host and Port stay empty so a unix socket can be configured alone;
	// validateAndSet fills them in for TCP.
	cfg.Cookie.Domain = ""
	cfg.Cookie.Path = "/"
	cfg.Cookie.SameSite = "lax"

	cfg.PageRows.Modules = append([]string(nil), defaultPageRowsModules...)

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerSecond = defaultLimiterRequestsPerSecond
	cfg.Limiter.Burst = defaultLimiterBurst

	cfg.Response.Compression = true

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
