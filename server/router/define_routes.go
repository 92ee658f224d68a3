// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/server/middleware"
	"github.com/cjnimes/Cookie/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
func (router *Router) DefineRoutes() {
	// Index page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", redirectTo("/settings", http.StatusFound))

	// Settings routes
	router.HandleFunc("GET /settings", middleware.CatchError(routes.SettingsPage))
	router.HandleFunc("POST /settings/page-rows/{module}", middleware.CatchError(routes.PageRowsPOST))
	router.HandleFunc("POST /settings/reset", middleware.CatchError(routes.ResetPOST))

	// REST API routes
	router.HandleFunc("GET /api/page-rows", middleware.CatchError(routes.PageRowsAPI))

	if config.Global.Development.InDevelopment {
		router.HandleFunc("GET /debug/cookies", middleware.CatchError(routes.CookiesDebugPage))
	}

	// Everything else renders the themed 404 page.
	router.HandleFunc("/", middleware.CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}))
}
