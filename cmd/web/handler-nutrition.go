package main

import (
	"log/slog"
	"net/http"

	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/nutrition"
)

func (app *application) nutritionPOST(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body        nutrition.BodyComposition `json:"body"`
		Goals       nutrition.Goals           `json:"goals"`
		Preferences nutrition.DietPreferences `json:"preferences"`
	}
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Body.Weight <= 0 || req.Body.Height <= 0 || req.Body.Age <= 0 {
		app.clientError(w, r, http.StatusBadRequest, "body weight, height and age are required")
		return
	}

	profile, err := app.nutritionService.Calculate(r.Context(), app.currentUserID(r),
		req.Body, req.Goals, req.Preferences)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, profile)
}

func (app *application) nutritionCurrentGET(w http.ResponseWriter, r *http.Request) {
	profile, err := app.nutritionService.Current(r.Context(), app.currentUserID(r))
	if err != nil {
		if errors.Is(err, nutrition.ErrProfileNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no nutrition profile")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

func (app *application) nutritionRecommendationsGET(w http.ResponseWriter, r *http.Request) {
	recommendations, err := app.nutritionService.Recommendations(r.Context(), app.currentUserID(r))
	if err != nil {
		if errors.Is(err, nutrition.ErrProfileNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no nutrition profile")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string][]string{"recommendations": recommendations})
}

// nutritionTrackPOST records one day of intake and reports it against the
// targets. The adaptive record picks up the calorie adherence as well.
func (app *application) nutritionTrackPOST(w http.ResponseWriter, r *http.Request) {
	var day nutrition.DailyLog
	if err := app.readJSON(w, r, &day); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(day.Meals) == 0 {
		app.clientError(w, r, http.StatusBadRequest, "at least one meal is required")
		return
	}

	userID := app.currentUserID(r)
	progress, err := app.nutritionService.TrackProgress(r.Context(), userID, day)
	if err != nil {
		switch {
		case errors.Is(err, nutrition.ErrProfileNotFound):
			app.clientError(w, r, http.StatusNotFound, "no nutrition profile")
		case errors.Is(err, nutrition.ErrInvalidMeal):
			app.clientError(w, r, http.StatusBadRequest, err.Error())
		default:
			app.serverError(w, r, err)
		}
		return
	}

	if _, err = app.tracker.RecordNutrition(r.Context(), userID,
		int(progress.Calories.Target), progress.Calories.Actual); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "adaptive nutrition update failed",
			slog.Any("error", err))
	}

	app.writeJSON(w, r, http.StatusOK, progress)
}

func (app *application) nutritionInsightsGET(w http.ResponseWriter, r *http.Request) {
	insights, err := app.nutritionService.Insights(r.Context(), app.currentUserID(r),
		r.URL.Query().Get("period"))
	if err != nil {
		if errors.Is(err, nutrition.ErrProfileNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no nutrition profile")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, insights)
}
