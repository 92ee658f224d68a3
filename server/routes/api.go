// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/server/request_context"
	"github.com/cjnimes/Cookie/server/utils"
)

// PageRowsAPI writes the stored page-rows preferences as a JSON object keyed
// by module, with null for modules that have none.
//
// The optional "module" query parameter limits the response to one module.
// An unknown module is answered with 400 and a JSON {"error": ...} body.
func PageRowsAPI(w http.ResponseWriter, r *http.Request) error {
	modules := config.Global.PageRows.Modules

	if moduleID := utils.GetQueryParam(r, "module"); moduleID != "" {
		if !slices.Contains(modules, moduleID) {
			err := fmt.Errorf("%w: %q", errUnknownModule, moduleID)

			if encErr := writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()}); encErr != nil {
				return encErr
			}

			return err
		}

		modules = []string{moduleID}
	}

	store := request_context.FromRequest(r).Cookies
	resp := make(map[string]*int, len(modules))

	for _, moduleID := range modules {
		if rows, ok := store.PageRows(moduleID, 0); ok {
			resp[moduleID] = &rows
		} else {
			resp[moduleID] = nil
		}
	}

	return writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes v as an uncacheable JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}
