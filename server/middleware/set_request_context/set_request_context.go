// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/core/untrusted"
	"github.com/cjnimes/Cookie/server/request_context"
)

// WithRequestContext is a middleware that attaches a RequestContext to each HTTP request.
//
// Preference cookies are scoped to the configured cookie domain, or to the
// registrable domain of the request host when none is configured, and to the
// configured cookie path and SameSite mode.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := request_context.WithRequestContext(r.Context(), w, r, cookieDomain())
	request_context.FromContext(ctx).Cookies.ScopePreferences(config.Global.Cookie.Path, config.Global.Cookie.SameSiteMode)

	next.ServeHTTP(w, r.WithContext(ctx))
}

func cookieDomain() untrusted.DomainFunc {
	domain := config.Global.Cookie.Domain
	if domain == "" {
		return nil
	}

	return func() string { return domain }
}
