// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ModuleRows is the page-rows preference of a single module.
type ModuleRows struct {
	ID   string
	Rows int
	Set  bool
}

// SettingsData is the data used to render the settings page.
type SettingsData struct {
	Title   string
	Modules []ModuleRows
	Values  []int
	Default int

	// Saved names the module whose preference was just saved, if any.
	Saved string

	// ShowDebug links to the cookie dump.
	ShowDebug bool
}

// Settings renders one page-rows form per module, plus a reset form.
//
// Modules without a stored preference preselect the default value.
func Settings(data SettingsData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<h1>`)
		b.WriteString(templ.EscapeString(data.Title))
		b.WriteString(`</h1>`)

		if data.Saved != "" {
			b.WriteString(`<p class="notice" id="saved">Saved rows per page for `)
			b.WriteString(templ.EscapeString(data.Saved))
			b.WriteString(`.</p>`)
		}

		for _, module := range data.Modules {
			writeModuleForm(&b, module, data.Values, data.Default)
		}

		b.WriteString(`<form method="post" action="/settings/reset" id="reset">`)
		b.WriteString(`<button type="submit">Reset all</button></form>`)

		if data.ShowDebug {
			b.WriteString(`<p><a href="/debug/cookies">Cookie dump</a></p>`)
		}

		_, err := io.WriteString(w, b.String())

		return err
	})

	return page(data.Title, body)
}

func writeModuleForm(b *strings.Builder, module ModuleRows, values []int, defaultValue int) {
	selected := module.Rows
	if !module.Set {
		selected = defaultValue
	}

	action := string(templ.URL("/settings/page-rows/" + module.ID))

	b.WriteString(`<form method="post" class="page-rows"`)
	b.WriteString(attr("action", action))
	b.WriteString(attr("data-module", module.ID))
	b.WriteString(`><label>`)
	b.WriteString(templ.EscapeString(module.ID))
	b.WriteString(` <select name="rows">`)

	for _, v := range values {
		value := strconv.Itoa(v)

		b.WriteString(`<option`)
		b.WriteString(attr("value", value))

		if v == selected {
			b.WriteString(` selected`)
		}

		b.WriteString(`>`)
		b.WriteString(value)
		b.WriteString(`</option>`)
	}

	b.WriteString(`</select></label>`)
	b.WriteString(`<input type="hidden" name="return_path" value="/settings">`)
	b.WriteString(`<button type="submit">Save</button></form>`)
}
