// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CookieDump renders a preformatted cookie dump.
func CookieDump(dump string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Cookies</h1><pre id="dump">`+templ.EscapeString(dump)+`</pre>`)

		return err
	})

	return page("Cookies", body)
}
