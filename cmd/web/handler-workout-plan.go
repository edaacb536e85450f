package main

import (
	"net/http"

	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/planner"
)

func (app *application) fitnessAnalysisGET(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.plannerService.Analyze(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, analysis)
}

// workoutPlanPOST generates and activates a new plan version. The request may
// override stored preferences for this generation only.
func (app *application) workoutPlanPOST(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals          []string             `json:"goals"`
		DurationWeeks  int                  `json:"duration"`
		TimePerSession int                  `json:"timePerSession"`
		Preferences    *planner.Preferences `json:"preferences"`
	}
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := app.plannerService.GeneratePlan(r.Context(), app.currentUserID(r),
		req.Preferences, req.Goals, planner.Constraints{
			DurationWeeks:  req.DurationWeeks,
			TimePerSession: req.TimePerSession,
		})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, plan)
}

func (app *application) workoutPlanCurrentGET(w http.ResponseWriter, r *http.Request) {
	plan, err := app.plannerService.ActivePlan(r.Context(), app.currentUserID(r))
	if err != nil {
		if errors.Is(err, planner.ErrPlanNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no active workout plan")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, plan)
}

func (app *application) workoutPlanFeedbackPOST(w http.ResponseWriter, r *http.Request) {
	var feedback planner.PlanFeedback
	if err := app.readJSON(w, r, &feedback); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	err := app.plannerService.SavePlanFeedback(r.Context(), app.currentUserID(r), feedback)
	if err != nil {
		if errors.Is(err, planner.ErrPlanNotFound) {
			app.clientError(w, r, http.StatusNotFound, "no active workout plan")
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
