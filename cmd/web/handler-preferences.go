package main

import (
	"net/http"

	"github.com/vuna-de/be-exe/internal/planner"
)

// preferencesGET returns the stored preferences, or 404 when the user has
// never submitted any.
func (app *application) preferencesGET(w http.ResponseWriter, r *http.Request) {
	prefs, err := app.plannerService.Preferences(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if prefs == nil {
		app.clientError(w, r, http.StatusNotFound, "no preferences submitted yet")
		return
	}
	app.writeJSON(w, r, http.StatusOK, prefs)
}

func (app *application) preferencesPOST(w http.ResponseWriter, r *http.Request) {
	var prefs planner.Preferences
	if err := app.readJSON(w, r, &prefs); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.plannerService.SavePreferences(r.Context(), app.currentUserID(r), prefs); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, prefs)
}
