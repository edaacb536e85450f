package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vuna-de/be-exe/internal/planner"
)

// workoutHistoryPOST appends one exercise performance and folds it into the
// adaptive learning record.
func (app *application) workoutHistoryPOST(w http.ResponseWriter, r *http.Request) {
	var entry planner.HistoryEntry
	if err := app.readJSON(w, r, &entry); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if entry.ExerciseID == "" {
		app.clientError(w, r, http.StatusBadRequest, "exerciseId is required")
		return
	}

	userID := app.currentUserID(r)
	stored, err := app.plannerService.RecordHistory(r.Context(), userID, entry)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// The learning update is best effort; a failure must not lose the
	// recorded session.
	if _, err = app.tracker.RecordWorkout(r.Context(), userID, stored); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "adaptive update failed",
			slog.Any("error", err))
	}

	app.writeJSON(w, r, http.StatusCreated, stored)
}

func (app *application) workoutHistoryGET(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	history, err := app.plannerService.History(r.Context(), app.currentUserID(r), limit, offset)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, history)
}

// queryInt parses an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
