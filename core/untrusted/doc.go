// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package r/w public state in a request.

Public state -- HTTP cookies -- is received from the user agent and can be anything.

The user controls all of it. A Store is built once per request from the incoming
cookies and emits every change to a cookie.Sink. Changes reach the client only with
the response, so a Store mirrors its own writes to keep later reads in the same
request consistent.
*/
package untrusted
