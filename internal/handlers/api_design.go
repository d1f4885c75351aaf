// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"privatespace/internal/design"
	"privatespace/internal/middleware"
)

// DashboardStats returns item counts, storage use and recent activity.
func (a *API) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Dashboard.Stats(userID(r))
	if err != nil {
		storeFailed(w, "dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// resolvedStyle is the response of ResolveDesign.
type resolvedStyle struct {
	Surface    design.Surface `json:"surface"`
	Style      design.Style   `json:"style"`
	CSS        string         `json:"css"`
	ClassNames string         `json:"class_names"`
}

// ResolveDesign resolves a design configuration for the surface named in
// the query, so clients can preview an item before saving it.
func (a *API) ResolveDesign(w http.ResponseWriter, r *http.Request) {
	surface, err := design.ParseSurface(r.URL.Query().Get("surface"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var opts design.Options
	if err := decodeJSON(w, r, &opts); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st := design.Resolve(&opts, surface)
	writeJSON(w, http.StatusOK, resolvedStyle{
		Surface:    surface,
		Style:      st,
		CSS:        st.CSS(),
		ClassNames: st.ClassNames(),
	})
}

// ThemeVars returns the cascade variables currently applied for the caller.
func (a *API) ThemeVars(w http.ResponseWriter, r *http.Request) {
	theme := middleware.ThemeFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"vars": theme.Vars(),
		"css":  theme.CSS(),
	})
}
