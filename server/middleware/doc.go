// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality shared by every route.

Route definitions are centralized in router.DefineRoutes; the middleware chain
is assembled in router.RegisterMiddleware.
*/
package middleware
