// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the HTML pages served by the application.

Every page is a templ.Component, so handlers render them the same way
regardless of how a component is built.
*/
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// page wraps body in the shared document layout.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>`)
		b.WriteString(templ.EscapeString(title))
		b.WriteString(`</title></head><body><header><nav><a href="/settings">Settings</a></nav></header><main>`)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</main></body></html>`)

		return err
	})
}

// attr renders a double-quoted, escaped HTML attribute.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}
