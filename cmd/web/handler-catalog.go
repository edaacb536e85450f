package main

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/yuin/goldmark"
)

func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := catalog.ExerciseFilter{
		Category:    query.Get("category"),
		Difficulty:  query.Get("difficulty"),
		MuscleGroup: query.Get("muscle"),
	}
	if equipment := query.Get("equipment"); equipment != "" {
		filter.Equipment = strings.Split(equipment, ",")
	}
	app.writeJSON(w, r, http.StatusOK, app.catalogCache.Exercises(filter))
}

// exerciseGET returns one exercise with its description rendered from
// markdown to HTML.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.clientError(w, r, http.StatusNotFound, "unknown exercise")
		return
	}
	exercise, err := app.catalogCache.ExerciseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "unknown exercise")
			return
		}
		app.serverError(w, r, err)
		return
	}

	var description bytes.Buffer
	if err = goldmark.Convert([]byte(exercise.Description), &description); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, struct {
		catalog.Exercise
		DescriptionHTML string `json:"descriptionHtml"`
	}{
		Exercise:        exercise,
		DescriptionHTML: description.String(),
	})
}

func (app *application) mealsGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := catalog.MealFilter{
		MealType: query.Get("mealType"),
		Cuisine:  query.Get("cuisine"),
	}
	if maxCalories := queryInt(r, "maxCalories", 0); maxCalories > 0 {
		filter.MaxCalories = maxCalories
	}
	if tags := query.Get("excludeTags"); tags != "" {
		filter.ExcludeTags = strings.Split(tags, ",")
	}
	app.writeJSON(w, r, http.StatusOK, app.catalogCache.Meals(filter))
}

func (app *application) catalogRefreshPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.catalogCache.Refresh(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) adaptiveLearningGET(w http.ResponseWriter, r *http.Request) {
	record, err := app.tracker.Profile(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, record)
}

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
