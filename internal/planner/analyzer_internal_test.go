package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/vuna-de/be-exe/internal/ptr"
)

func TestAnalyzeEmptyInputs(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := analyze(nil, nil, now)

	if got.ExperienceLevel != ExperienceBeginner {
		t.Errorf("ExperienceLevel = %q, want beginner", got.ExperienceLevel)
	}
	if got.StrengthLevel != ExperienceBeginner || got.EnduranceLevel != ExperienceBeginner {
		t.Errorf("levels = %q/%q, want beginner/beginner", got.StrengthLevel, got.EnduranceLevel)
	}
	if got.Consistency != defaultConsistency {
		t.Errorf("Consistency = %v, want %v", got.Consistency, defaultConsistency)
	}
	if got.ProgressionRate != defaultProgressionRate {
		t.Errorf("ProgressionRate = %v, want %v", got.ProgressionRate, defaultProgressionRate)
	}
	if got.InjuryRisk != 0 {
		t.Errorf("InjuryRisk = %v, want 0", got.InjuryRisk)
	}
	if got.RecoveryHours != defaultRecoveryHours {
		t.Errorf("RecoveryHours = %v, want %v", got.RecoveryHours, defaultRecoveryHours)
	}
	if got.MotivationLevel != defaultMotivation {
		t.Errorf("MotivationLevel = %v, want %v", got.MotivationLevel, defaultMotivation)
	}
}

func TestStrengthLevelBucketing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		weight float64
		want   string
	}{
		{0, ExperienceBeginner},
		{19.9, ExperienceBeginner},
		{20, ExperienceIntermediate},
		{39.9, ExperienceIntermediate},
		{40, ExperienceAdvanced},
		{59.9, ExperienceAdvanced},
		{60, ExperienceExpert},
		{500, ExperienceExpert},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("weight %v", tt.weight), func(t *testing.T) {
			t.Parallel()
			history := []HistoryEntry{{
				ExerciseCategory: "strength",
				Sets:             []SetPerformance{{Reps: 5, Weight: tt.weight}},
			}}
			if got := strengthLevel(history); got != tt.want {
				t.Errorf("strengthLevel(%v) = %q, want %q", tt.weight, got, tt.want)
			}
		})
	}
}

func TestEnduranceLevelBucketing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, ExperienceBeginner},
		{9, ExperienceBeginner},
		{10, ExperienceIntermediate},
		{25, ExperienceAdvanced},
		{30, ExperienceExpert},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v minutes", tt.minutes), func(t *testing.T) {
			t.Parallel()
			history := []HistoryEntry{{
				ExerciseCategory: cardioCategory,
				Sets:             []SetPerformance{{Duration: int(tt.minutes * 60)}},
			}}
			if got := enduranceLevel(history); got != tt.want {
				t.Errorf("enduranceLevel(%v) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestConsistencyBounds(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Fewer than 7 entries: fixed low value.
	few := make([]HistoryEntry, 6)
	if got := consistency(few, now); got != defaultConsistency {
		t.Errorf("consistency(6 entries) = %v, want %v", got, defaultConsistency)
	}

	// Two sessions a day for 30 days must cap at 1.
	var dense []HistoryEntry
	for i := range 30 {
		day := now.AddDate(0, 0, -i)
		dense = append(dense, HistoryEntry{PerformedAt: day}, HistoryEntry{PerformedAt: day.Add(-time.Hour)})
	}
	if got := consistency(dense, now); got != 1 {
		t.Errorf("consistency(daily doubles) = %v, want 1", got)
	}

	// Old entries outside the window do not count.
	var stale []HistoryEntry
	for i := range 10 {
		stale = append(stale, HistoryEntry{PerformedAt: now.AddDate(0, 0, -40-i)})
	}
	if got := consistency(stale, now); got != 0 {
		t.Errorf("consistency(stale) = %v, want 0", got)
	}
}

func TestProgressionRate(t *testing.T) {
	t.Parallel()

	// Newest first: recent block lifts 44, older block lifts 40.
	var history []HistoryEntry
	for range 10 {
		history = append(history, HistoryEntry{
			ExerciseCategory: "strength",
			Sets:             []SetPerformance{{Reps: 5, Weight: 44}},
		})
	}
	for range 10 {
		history = append(history, HistoryEntry{
			ExerciseCategory: "strength",
			Sets:             []SetPerformance{{Reps: 5, Weight: 40}},
		})
	}
	got := progressionRate(history)
	if want := 0.1; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("progressionRate = %v, want %v", got, want)
	}

	// Regression floors at zero.
	for i := range 10 {
		history[i].Sets[0].Weight = 30
	}
	if got = progressionRate(history); got != 0 {
		t.Errorf("progressionRate(regression) = %v, want 0", got)
	}

	// Short history returns the default.
	if got = progressionRate(history[:9]); got != defaultProgressionRate {
		t.Errorf("progressionRate(short) = %v, want %v", got, defaultProgressionRate)
	}
}

func TestInjuryRiskCapped(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var history []HistoryEntry
	for range 10 {
		history = append(history, HistoryEntry{
			PerformedAt: now.Add(-time.Hour),
			Pain:        "severe",
			Form:        "poor",
			AverageRPE:  9,
		})
	}
	prefs := &Preferences{InjuryHistory: []Injury{{BodyPart: "knee"}, {BodyPart: "shoulder"}}}
	if got := injuryRisk(history, prefs, now); got != 1 {
		t.Errorf("injuryRisk = %v, want cap 1", got)
	}

	// A single moderate signal stays fractional.
	single := []HistoryEntry{{PerformedAt: now.Add(-time.Hour), Form: "poor"}}
	if got := injuryRisk(single, nil, now); got != 0.1 {
		t.Errorf("injuryRisk(single poor form) = %v, want 0.1", got)
	}

	// Severe pain older than a week does not trigger the pain penalty.
	old := []HistoryEntry{{PerformedAt: now.AddDate(0, 0, -8), Pain: "severe"}}
	if got := injuryRisk(old, nil, now); got != 0 {
		t.Errorf("injuryRisk(old pain) = %v, want 0", got)
	}
}

func TestRecoveryHours(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rpe  float64
		want int
	}{
		{3, 24},
		{6, 48},
		{8, 72},
		{9.5, 96},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rpe %v", tt.rpe), func(t *testing.T) {
			t.Parallel()
			var history []HistoryEntry
			for range 5 {
				history = append(history, HistoryEntry{AverageRPE: tt.rpe})
			}
			if got := recoveryHours(history); got != tt.want {
				t.Errorf("recoveryHours(rpe %v) = %v, want %v", tt.rpe, got, tt.want)
			}
		})
	}
}

func TestExercisePreferences(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	history := []HistoryEntry{
		{ExerciseID: "squat", PerformedAt: now, Feedback: SessionFeedback{Enjoyment: ptr.Ref(9)}},
		{ExerciseID: "squat", PerformedAt: now.AddDate(0, 0, -1), Feedback: SessionFeedback{Enjoyment: ptr.Ref(7)}},
		{ExerciseID: "burpee", PerformedAt: now.AddDate(0, 0, -2), Feedback: SessionFeedback{Enjoyment: ptr.Ref(2)}},
		{ExerciseID: "deadlift", PerformedAt: now.AddDate(0, 0, -3), Pain: "severe"},
		{
			ExerciseID:  "box jump",
			PerformedAt: now.AddDate(0, 0, -4),
			Pain:        "severe",
			Feedback:    SessionFeedback{Comments: "knee pain on landing"},
		},
		{
			ExerciseID:  "row machine",
			PerformedAt: now.AddDate(0, 0, -5),
			Feedback:    SessionFeedback{Enjoyment: ptr.Ref(1), Comments: "too monotonous"},
		},
	}

	preferred, avoided := exercisePreferences(history)

	if len(preferred) == 0 || preferred[0].ExerciseID != "squat" {
		t.Fatalf("preferred = %+v, want squat first", preferred)
	}
	if preferred[0].Frequency != 2 || preferred[0].AvgRating != 8 {
		t.Errorf("squat stats = %+v, want frequency 2 rating 8", preferred[0])
	}

	reasons := make(map[string]string)
	for _, a := range avoided {
		reasons[a.ExerciseID] = a.Reason
	}
	if reasons["burpee"] != "low enjoyment" {
		t.Errorf("burpee avoid reason = %q, want low enjoyment", reasons["burpee"])
	}
	if reasons["deadlift"] != "severe pain reported" {
		t.Errorf("deadlift avoid reason = %q, want severe pain reported", reasons["deadlift"])
	}
	// The user's own comment wins over the canned explanation.
	if reasons["box jump"] != "knee pain on landing" {
		t.Errorf("box jump avoid reason = %q, want the feedback comment", reasons["box jump"])
	}
	if reasons["row machine"] != "too monotonous" {
		t.Errorf("row machine avoid reason = %q, want the feedback comment", reasons["row machine"])
	}
}
