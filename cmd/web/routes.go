package main

import "net/http"

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
				app.crossOriginProtection(next))))
		}
		session = func(next http.Handler) http.Handler {
			return base(app.sessionManager.LoadAndSave(app.resolveUser(next)))
		}
	)

	mux.Handle("GET /api/preferences", session(http.HandlerFunc(app.preferencesGET)))
	mux.Handle("POST /api/preferences", session(http.HandlerFunc(app.preferencesPOST)))

	mux.Handle("GET /api/fitness-analysis", session(http.HandlerFunc(app.fitnessAnalysisGET)))

	mux.Handle("POST /api/workout-plans", session(http.HandlerFunc(app.workoutPlanPOST)))
	mux.Handle("GET /api/workout-plans/current", session(http.HandlerFunc(app.workoutPlanCurrentGET)))
	mux.Handle("POST /api/workout-plans/feedback", session(http.HandlerFunc(app.workoutPlanFeedbackPOST)))

	mux.Handle("POST /api/workout-history", session(http.HandlerFunc(app.workoutHistoryPOST)))
	mux.Handle("GET /api/workout-history", session(http.HandlerFunc(app.workoutHistoryGET)))

	mux.Handle("POST /api/nutrition", session(http.HandlerFunc(app.nutritionPOST)))
	mux.Handle("GET /api/nutrition/current", session(http.HandlerFunc(app.nutritionCurrentGET)))
	mux.Handle("GET /api/nutrition/recommendations", session(http.HandlerFunc(app.nutritionRecommendationsGET)))
	mux.Handle("POST /api/nutrition/track", session(http.HandlerFunc(app.nutritionTrackPOST)))
	mux.Handle("GET /api/nutrition/insights", session(http.HandlerFunc(app.nutritionInsightsGET)))

	mux.Handle("GET /api/adaptive-learning", session(http.HandlerFunc(app.adaptiveLearningGET)))

	mux.Handle("GET /api/exercises", session(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{id}", session(http.HandlerFunc(app.exerciseGET)))
	mux.Handle("GET /api/meals", session(http.HandlerFunc(app.mealsGET)))
	mux.Handle("POST /api/catalog/refresh", session(http.HandlerFunc(app.catalogRefreshPOST)))

	mux.Handle("GET /api/healthy", base(http.HandlerFunc(app.healthy)))

	return mux
}
