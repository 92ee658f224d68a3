// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/server/middleware"
	"github.com/cjnimes/Cookie/server/middleware/limiter"
	"github.com/cjnimes/Cookie/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)

	if config.Global.Response.Compression {
		router.Use(middleware.Compress)
	}

	router.Use(middleware.NormalizeURL)                // handle trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		router.Use(limiter.Evaluate)
	}
}
