// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/cjnimes/Cookie/assets/views"
	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/core/untrusted"
	"github.com/cjnimes/Cookie/server/request_context"
	"github.com/cjnimes/Cookie/server/utils"
)

// Form value keys that are used in the frontend.
const (
	formKeyRows       = "rows"
	formKeyReturnPath = "return_path"

	settingsPath = "/settings"
)

var (
	errUnknownModule = errors.New("unknown module")
	errInvalidRows   = errors.New("rows must be a positive integer")
)

// SettingsPage renders the page-rows preference of every configured module.
func SettingsPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	store := request_context.FromRequest(r).Cookies
	modules := config.Global.PageRows.Modules

	data := views.SettingsData{
		Title:     "Settings",
		Modules:   make([]views.ModuleRows, 0, len(modules)),
		Values:    untrusted.PageRowsValues(),
		Default:   untrusted.PageRowsDefaultValue(),
		ShowDebug: config.Global.Development.InDevelopment,
	}

	for _, moduleID := range modules {
		rows, ok := store.PageRows(moduleID, 0)
		data.Modules = append(data.Modules, views.ModuleRows{ID: moduleID, Rows: rows, Set: ok})
	}

	if saved := utils.GetQueryParam(r, "saved"); slices.Contains(modules, saved) {
		data.Saved = saved
	}

	return views.Settings(data).Render(r.Context(), w)
}

// PageRowsPOST stores the rows-per-page preference of a module.
//
// Values outside the allowed set are stored as the default.
func PageRowsPOST(w http.ResponseWriter, r *http.Request) error {
	moduleID := utils.GetPathVar(r, "module")
	if !slices.Contains(config.Global.PageRows.Modules, moduleID) {
		w.WriteHeader(http.StatusNotFound)

		return fmt.Errorf("%w: %q", errUnknownModule, moduleID)
	}

	rows, err := strconv.Atoi(utils.GetFormValue(r, formKeyRows))
	if err != nil || rows <= 0 {
		return badRequest(w, r, fmt.Errorf("%w: %q", errInvalidRows, utils.GetFormValue(r, formKeyRows)))
	}

	request_context.FromRequest(r).Cookies.PageRows(moduleID, rows)

	returnPath := utils.SanitizeReturnPath(utils.GetFormValue(r, formKeyReturnPath))
	if returnPath == "" || returnPath == settingsPath {
		returnPath = settingsPath + "?saved=" + url.QueryEscape(moduleID)
	}

	http.Redirect(w, r, returnPath, http.StatusSeeOther)

	return nil
}

// ResetPOST removes the page-rows preference of every configured module.
func ResetPOST(w http.ResponseWriter, r *http.Request) error {
	request_context.FromRequest(r).Cookies.ClearPageRows(config.Global.PageRows.Modules)

	http.Redirect(w, r, settingsPath, http.StatusSeeOther)

	return nil
}

// badRequest renders the error page with 400 Bad Request and returns err for logging.
func badRequest(w http.ResponseWriter, r *http.Request, err error) error {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusBadRequest)

	if renderErr := views.Error(views.ErrorData{
		Title:      "Error",
		Error:      err,
		StatusCode: http.StatusBadRequest,
	}).Render(r.Context(), w); renderErr != nil {
		return errors.Join(err, renderErr)
	}

	return err
}
