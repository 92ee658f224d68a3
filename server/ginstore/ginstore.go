// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ginstore binds the cookie store to gin.

Middleware attaches one store per request; handlers fetch it with From.
*/
package ginstore

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cjnimes/Cookie/core/cookie"
	"github.com/cjnimes/Cookie/core/untrusted"
)

// contextKey is the gin context key holding the store.
const contextKey = "cookiestore"

// Middleware attaches a cookie store built from the request to the gin context.
//
// domain scopes preference cookies; nil uses the registrable domain of the request host.
func Middleware(domain untrusted.DomainFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, untrusted.FromRequest(c.Writer, c.Request, domain))
		c.Next()
	}
}

// From returns the store attached by Middleware.
//
// Without Middleware, an empty store that discards its writes is returned.
func From(c *gin.Context) *untrusted.Store {
	if v, ok := c.Get(contextKey); ok {
		if store, ok := v.(*untrusted.Store); ok {
			return store
		}
	}

	return untrusted.New(nil, &cookie.Recorder{}, nil)
}

// RegisterRoutes mounts the page-rows endpoints for modules on routes:
//
//	GET  /page-rows          {"module": rows|null, ...}
//	PUT  /page-rows/:module  body or query "rows"; responds with the stored value
//
// routes must be served behind Middleware.
func RegisterRoutes(routes gin.IRoutes, modules []string) {
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		known[m] = true
	}

	routes.GET("/page-rows", func(c *gin.Context) {
		store := From(c)
		resp := gin.H{}

		for _, moduleID := range modules {
			if rows, ok := store.PageRows(moduleID, 0); ok {
				resp[moduleID] = rows
			} else {
				resp[moduleID] = nil
			}
		}

		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, resp)
	})

	routes.PUT("/page-rows/:module", func(c *gin.Context) {
		moduleID := c.Param("module")
		if !known[moduleID] {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown module"})

			return
		}

		rows, err := strconv.Atoi(c.PostForm("rows"))
		if err != nil {
			rows, err = strconv.Atoi(c.Query("rows"))
		}

		if err != nil || rows <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rows must be a positive integer"})

			return
		}

		stored, _ := From(c).PageRows(moduleID, rows)

		c.JSON(http.StatusOK, gin.H{moduleID: stored})
	})
}
