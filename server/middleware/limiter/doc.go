// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits state-changing HTTP requests.

Clients are grouped by their IP network (/24 for IPv4, /64 for IPv6) and each
network shares one token bucket. Safe methods (GET, HEAD, OPTIONS) are never limited.
*/
package limiter
