// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ErrorData is the data used to render the error page.
type ErrorData struct {
	Title      string
	Error      error
	StatusCode int
}

// Error renders the generic error page.
func Error(data ErrorData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<h1 id="status">`)
		b.WriteString(strconv.Itoa(data.StatusCode))
		b.WriteString(` `)
		b.WriteString(templ.EscapeString(http.StatusText(data.StatusCode)))
		b.WriteString(`</h1>`)

		if data.Error != nil {
			b.WriteString(`<pre id="error">`)
			b.WriteString(templ.EscapeString(data.Error.Error()))
			b.WriteString(`</pre>`)
		}

		b.WriteString(`<p><a href="/settings">Back to settings</a></p>`)

		_, err := io.WriteString(w, b.String())

		return err
	})

	return page(data.Title, body)
}
