package planner_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/planner"
	"github.com/vuna-de/be-exe/internal/ptr"
	"github.com/vuna-de/be-exe/internal/sqlite"
	"github.com/vuna-de/be-exe/internal/testhelpers"
)

const testUserID = 1

func newTestService(t *testing.T) *planner.Service {
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
	return planner.NewService(db, cache, logger)
}

// A brand-new user asking for a one-week general fitness plan at frequency 3
// gets exactly three base-level workout days and no confidence bonuses.
func TestGeneratePlanNewUser(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	plan, err := svc.GeneratePlan(ctx, testUserID, nil, []string{"general_fitness"},
		planner.Constraints{DurationWeeks: 1})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	if plan.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want exactly 0.5 for an empty history", plan.Confidence)
	}
	if plan.Version != 1 {
		t.Errorf("Version = %d, want 1", plan.Version)
	}
	if !plan.IsActive {
		t.Error("expected new plan to be active")
	}
	if plan.GenerationReason != "initial" {
		t.Errorf("GenerationReason = %q, want initial", plan.GenerationReason)
	}
	if len(plan.Plan.Days) != 3 {
		t.Fatalf("got %d workout days, want 3", len(plan.Plan.Days))
	}
	for _, day := range plan.Plan.Days {
		if len(day.Exercises) < 4 || len(day.Exercises) > 8 {
			t.Errorf("week %d day %d has %d exercises, want 4..8", day.Week, day.Day, len(day.Exercises))
		}
	}
	if math.Abs(plan.Predictions.SuccessProbability-0.62) > 1e-9 {
		t.Errorf("SuccessProbability = %v, want 0.62", plan.Predictions.SuccessProbability)
	}
}

func TestGeneratePlanVersioning(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	first, err := svc.GeneratePlan(ctx, testUserID, nil, nil, planner.Constraints{})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	second, err := svc.GeneratePlan(ctx, testUserID, nil, nil, planner.Constraints{})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	if first.Version != 1 || second.Version != 2 {
		t.Errorf("versions = %d, %d, want 1, 2", first.Version, second.Version)
	}

	active, err := svc.ActivePlan(ctx, testUserID)
	if err != nil {
		t.Fatalf("ActivePlan: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("active plan = %s, want the newest plan %s", active.ID, second.ID)
	}
	if active.Version != 2 {
		t.Errorf("active plan version = %d, want 2", active.Version)
	}
}

func TestActivePlanNotFound(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	_, err := svc.ActivePlan(t.Context(), testUserID)
	if !errors.Is(err, planner.ErrPlanNotFound) {
		t.Errorf("ActivePlan error = %v, want ErrPlanNotFound", err)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	// No record yet.
	got, err := svc.Preferences(ctx, testUserID)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if got != nil {
		t.Fatalf("Preferences = %+v, want nil before first save", got)
	}

	prefs := planner.Preferences{
		Goals:                 []string{"muscle_gain", "strength"},
		ExperienceLevel:       "intermediate",
		WorkoutFrequency:      4,
		WorkoutDuration:       75,
		AvailableEquipment:    []string{"barbell", "dumbbell", "bench"},
		PreferredWorkoutTypes: []string{"strength"},
		InjuryHistory:         []planner.Injury{{BodyPart: "knee", Severity: "mild", Recovered: true}},
		DietaryRestrictions:   []string{"vegetarian"},
		FoodPreferences:       []string{"italian"},
		MealFrequency:         4,
		MotivationLevel:       8,
		Social:                planner.Social{ShareProgress: true},
	}
	if err = svc.SavePreferences(ctx, testUserID, prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err = svc.Preferences(ctx, testUserID)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if diff := cmp.Diff(&prefs, got); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}

	// Upsert, not duplicate.
	prefs.WorkoutFrequency = 5
	if err = svc.SavePreferences(ctx, testUserID, prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err = svc.Preferences(ctx, testUserID)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if got.WorkoutFrequency != 5 {
		t.Errorf("WorkoutFrequency = %d, want 5 after update", got.WorkoutFrequency)
	}
}

func TestRecordHistoryDerivesAggregates(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	entry := planner.HistoryEntry{
		ExerciseID:       "squat",
		ExerciseCategory: "strength",
		PrimaryMuscles:   []string{"quadriceps"},
		PerformedAt:      time.Date(2026, 2, 20, 18, 0, 0, 0, time.UTC),
		Sets: []planner.SetPerformance{
			{Reps: 8, Weight: 60, RPE: 7, Completed: true},
			{Reps: 6, Weight: 70, RPE: 9, Completed: true},
		},
		Form:     "good",
		Feedback: planner.SessionFeedback{Enjoyment: ptr.Ref(8)},
	}

	saved, err := svc.RecordHistory(ctx, testUserID, entry)
	if err != nil {
		t.Fatalf("RecordHistory: %v", err)
	}
	if saved.TotalVolume != 8*60+6*70 {
		t.Errorf("TotalVolume = %v, want %v", saved.TotalVolume, 8*60+6*70)
	}
	if saved.MaxWeight != 70 || saved.MaxReps != 8 {
		t.Errorf("MaxWeight/MaxReps = %v/%v, want 70/8", saved.MaxWeight, saved.MaxReps)
	}
	if saved.AverageRPE != 8 {
		t.Errorf("AverageRPE = %v, want 8", saved.AverageRPE)
	}

	entries, err := svc.History(ctx, testUserID, 10, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(entries))
	}
	saved.ID = entries[0].ID
	if diff := cmp.Diff(saved, entries[0]); diff != "" {
		t.Errorf("history round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryOrderingAndPaging(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	base := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := svc.RecordHistory(ctx, testUserID, planner.HistoryEntry{
			ExerciseID:       "push-up",
			ExerciseCategory: "strength",
			PerformedAt:      base.AddDate(0, 0, i),
			Sets:             []planner.SetPerformance{{Reps: 10, Completed: true}},
		})
		if err != nil {
			t.Fatalf("RecordHistory: %v", err)
		}
	}

	entries, err := svc.History(ctx, testUserID, 2, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].PerformedAt.After(entries[1].PerformedAt) {
		t.Errorf("history not newest first: %v then %v", entries[0].PerformedAt, entries[1].PerformedAt)
	}

	paged, err := svc.History(ctx, testUserID, 2, 4)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(paged) != 1 {
		t.Errorf("got %d entries at offset 4, want 1", len(paged))
	}
}

func TestSavePlanFeedback(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	feedback := planner.PlanFeedback{Rating: 4, CompletedWorkouts: 6, Comments: "solid plan"}
	if err := svc.SavePlanFeedback(ctx, testUserID, feedback); !errors.Is(err, planner.ErrPlanNotFound) {
		t.Fatalf("SavePlanFeedback without plan: %v, want ErrPlanNotFound", err)
	}

	if _, err := svc.GeneratePlan(ctx, testUserID, nil, nil, planner.Constraints{}); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if err := svc.SavePlanFeedback(ctx, testUserID, feedback); err != nil {
		t.Fatalf("SavePlanFeedback: %v", err)
	}

	active, err := svc.ActivePlan(ctx, testUserID)
	if err != nil {
		t.Fatalf("ActivePlan: %v", err)
	}
	if active.Feedback == nil || active.Feedback.Rating != 4 {
		t.Errorf("plan feedback = %+v, want rating 4", active.Feedback)
	}
}

// Exercises flagged as avoided must never show up in a generated plan.
func TestGeneratePlanExcludesAvoidedExercises(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	// Severe pain on push-ups flags them as avoided.
	_, err := svc.RecordHistory(ctx, testUserID, planner.HistoryEntry{
		ExerciseID:       "Push-up",
		ExerciseCategory: "strength",
		PerformedAt:      time.Now().Add(-24 * time.Hour),
		Sets:             []planner.SetPerformance{{Reps: 10, Completed: true}},
		Pain:             "severe",
	})
	if err != nil {
		t.Fatalf("RecordHistory: %v", err)
	}

	plan, err := svc.GeneratePlan(ctx, testUserID, nil, []string{"general_fitness"},
		planner.Constraints{DurationWeeks: 2})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	for _, day := range plan.Plan.Days {
		for _, e := range day.Exercises {
			if e.Name == "Push-up" {
				t.Fatal("avoided exercise Push-up appeared in the plan")
			}
		}
	}
}

func TestAnalyzeUsesStoredData(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := t.Context()

	if err := svc.SavePreferences(ctx, testUserID, planner.Preferences{
		Goals:            []string{"strength"},
		ExperienceLevel:  "advanced",
		WorkoutFrequency: 4,
		MotivationLevel:  9,
	}); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	analysis, err := svc.Analyze(ctx, testUserID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.ExperienceLevel != "advanced" {
		t.Errorf("ExperienceLevel = %q, want advanced", analysis.ExperienceLevel)
	}
	if analysis.MotivationLevel != 9 {
		t.Errorf("MotivationLevel = %d, want 9", analysis.MotivationLevel)
	}
}
