package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vuna-de/be-exe/internal/adaptive"
	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/nutrition"
	"github.com/vuna-de/be-exe/internal/planner"
	"github.com/vuna-de/be-exe/internal/sqlite"
	"github.com/vuna-de/be-exe/internal/testhelpers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	cache := catalog.NewCache(db, logger)
	if err = cache.Warm(ctx); err != nil {
		t.Fatalf("Failed to warm catalog cache: %v", err)
	}

	plannerService := planner.NewService(db, cache, logger)
	app := application{
		logger:           logger,
		sessionManager:   initializeSessionManager(db, config{SessionLifetimeHours: 1}),
		catalogCache:     cache,
		plannerService:   plannerService,
		nutritionService: nutrition.NewService(db, cache, logger),
		tracker:          adaptive.NewTracker(db, plannerService, cache, logger),
	}

	server := httptest.NewServer(app.routes())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if err = resp.Body.Close(); err != nil {
		t.Fatalf("Failed to close response body: %v", err)
	}
	return resp, payload
}

func TestHealthy(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/healthy", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestPreferencesLifecycle(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/preferences", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("initial GET status = %d, want 404", resp.StatusCode)
	}

	prefs := planner.Preferences{
		Goals:            []string{"muscle_gain"},
		ExperienceLevel:  "intermediate",
		WorkoutFrequency: 4,
		WorkoutDuration:  45,
		MotivationLevel:  7,
	}
	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/preferences", prefs)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d, want 200", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/preferences", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	var stored planner.Preferences
	if err := json.Unmarshal(body, &stored); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if stored.ExperienceLevel != "intermediate" || stored.WorkoutFrequency != 4 {
		t.Errorf("stored preferences = %+v", stored)
	}
}

func TestWorkoutPlanLifecycle(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/workout-plans/current", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("current before generation status = %d, want 404", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/workout-plans",
		map[string]any{"goals": []string{"general_fitness"}, "duration": 1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", resp.StatusCode, body)
	}
	var plan planner.GeneratedPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if plan.Version != 1 || !plan.IsActive {
		t.Errorf("plan version = %d active = %v", plan.Version, plan.IsActive)
	}
	if len(plan.Plan.Days) == 0 {
		t.Error("expected workout days in the generated plan")
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/workout-plans/current", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("current after generation status = %d, want 200", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/workout-plans/feedback",
		map[string]any{"rating": 4, "completedWorkouts": 2})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("feedback status = %d, want 204", resp.StatusCode)
	}
}

func TestWorkoutHistoryFeedsAdaptiveLearning(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/workout-history", map[string]any{
		"exerciseId":       "Push-up",
		"exerciseCategory": "strength",
		"sets": []map[string]any{
			{"reps": 10, "rpe": 6, "completed": true},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/workout-history", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	var history []planner.HistoryEntry
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/adaptive-learning", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("adaptive GET status = %d, want 200", resp.StatusCode)
	}
	var record adaptive.Record
	if err := json.Unmarshal(body, &record); err != nil {
		t.Fatalf("decode adaptive record: %v", err)
	}
	if record.Patterns.SessionsTracked != 1 {
		t.Errorf("SessionsTracked = %d, want 1", record.Patterns.SessionsTracked)
	}
}

func TestNutritionLifecycle(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/nutrition/current", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("current before calculation status = %d, want 404", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/nutrition", map[string]any{
		"body": map[string]any{
			"weight": 70, "height": 175, "age": 30,
			"gender": "male", "activityLevel": "moderately_active",
		},
		"goals":       map[string]any{"primaryGoal": "maintenance"},
		"preferences": map[string]any{"mealsPerDay": 3},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", resp.StatusCode, body)
	}
	var profile nutrition.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Targets.BMR != 1648.75 {
		t.Errorf("BMR = %v, want 1648.75", profile.Targets.BMR)
	}

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/nutrition/track", map[string]any{
		"meals": []map[string]any{
			{"servings": 1, "custom": map[string]any{"calories": 600, "protein": 40, "carbs": 50, "fat": 20}},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("track status = %d, want 200: %s", resp.StatusCode, body)
	}
	var progress nutrition.Progress
	if err := json.Unmarshal(body, &progress); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if progress.Calories.Actual != 600 {
		t.Errorf("Calories.Actual = %v, want 600", progress.Calories.Actual)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/nutrition/insights?period=week", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("insights status = %d, want 200", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/nutrition/recommendations", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommendations status = %d, want 200", resp.StatusCode)
	}
}

func TestExerciseCatalogEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/exercises?category=cardio", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("exercises status = %d, want 200", resp.StatusCode)
	}
	var exercises []catalog.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		t.Fatalf("decode exercises: %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("expected cardio exercises from the fixtures")
	}
	for _, e := range exercises {
		if e.Category != "cardio" {
			t.Errorf("exercise %q has category %q, want cardio", e.Name, e.Category)
		}
	}

	resp, body = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/exercises/%d", server.URL, exercises[0].ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("exercise detail status = %d, want 200", resp.StatusCode)
	}
	var detail struct {
		catalog.Exercise
		DescriptionHTML string `json:"descriptionHtml"`
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		t.Fatalf("decode exercise detail: %v", err)
	}
	if detail.DescriptionHTML == "" {
		t.Error("expected rendered description HTML")
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/exercises/999999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown exercise status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/catalog/refresh", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("refresh status = %d, want 204", resp.StatusCode)
	}
}

func TestInvalidUserHeader(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL+"/api/preferences", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("X-User-ID", "not-a-number")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
