package planner

import (
	"sort"
	"time"
)

const (
	defaultConsistency     = 0.3
	defaultProgressionRate = 0.1
	defaultRecoveryHours   = 48
	defaultMotivation      = 5

	consistencyMinEntries = 7
	consistencyWindowDays = 30
	progressionMinEntries = 10
	recoveryMinEntries    = 5
	preferredExerciseCap  = 10
)

// analyze derives a fitness analysis from the newest-first workout history and
// optional preferences. It is a pure function: every branch yields a defined
// value, including for empty history and nil preferences.
func analyze(history []HistoryEntry, prefs *Preferences, now time.Time) Analysis {
	if len(history) > historyWindow {
		history = history[:historyWindow]
	}

	analysis := Analysis{
		ExperienceLevel: ExperienceBeginner,
		StrengthLevel:   strengthLevel(history),
		EnduranceLevel:  enduranceLevel(history),
		Consistency:     consistency(history, now),
		ProgressionRate: progressionRate(history),
		InjuryRisk:      injuryRisk(history, prefs, now),
		RecoveryHours:   recoveryHours(history),
		MotivationLevel: defaultMotivation,
	}
	analysis.PreferredExercises, analysis.AvoidedExercises = exercisePreferences(history)

	if prefs != nil {
		if prefs.ExperienceLevel != "" {
			analysis.ExperienceLevel = prefs.ExperienceLevel
		}
		if prefs.MotivationLevel != 0 {
			analysis.MotivationLevel = prefs.MotivationLevel
		}
	}
	return analysis
}

func strengthLevel(history []HistoryEntry) string {
	var (
		sum   float64
		count int
	)
	for _, e := range history {
		if strengthLikeCategories[e.ExerciseCategory] {
			sum += e.maxSetWeight()
			count++
		}
	}
	if count == 0 {
		return ExperienceBeginner
	}
	return bucketLevel(strengthBuckets, sum/float64(count))
}

func enduranceLevel(history []HistoryEntry) string {
	var (
		sum   float64
		count int
	)
	for _, e := range history {
		if e.ExerciseCategory == cardioCategory {
			sum += e.totalDurationMinutes()
			count++
		}
	}
	if count == 0 {
		return ExperienceBeginner
	}
	return bucketLevel(enduranceBuckets, sum/float64(count))
}

// consistency is the share of the last 30 calendar days with at least one
// entry, capped at 1. Too little data yields a fixed low value.
func consistency(history []HistoryEntry, now time.Time) float64 {
	if len(history) < consistencyMinEntries {
		return defaultConsistency
	}
	cutoff := now.AddDate(0, 0, -consistencyWindowDays)
	days := make(map[string]bool)
	for _, e := range history {
		if e.PerformedAt.After(cutoff) {
			days[e.PerformedAt.Format(time.DateOnly)] = true
		}
	}
	result := float64(len(days)) / consistencyWindowDays
	if result > 1 {
		return 1
	}
	return result
}

// progressionRate compares mean max weight of the newest 10 entries against
// the 10 before them.
func progressionRate(history []HistoryEntry) float64 {
	if len(history) < progressionMinEntries {
		return defaultProgressionRate
	}
	recent := meanMaxWeight(history[:progressionMinEntries])
	end := 2 * progressionMinEntries
	if end > len(history) {
		end = len(history)
	}
	older := meanMaxWeight(history[progressionMinEntries:end])
	if older == 0 {
		return defaultProgressionRate
	}
	rate := (recent - older) / older
	if rate < 0 {
		return 0
	}
	return rate
}

func meanMaxWeight(entries []HistoryEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.maxSetWeight()
	}
	return sum / float64(len(entries))
}

// exercisePreferences counts exercise frequency and mean enjoyment, keeping
// the ten most frequent, and collects exercises flagged by low enjoyment or
// severe pain.
func exercisePreferences(history []HistoryEntry) ([]ExercisePreference, []AvoidedExercise) {
	type stats struct {
		frequency     int
		ratingSum     int
		ratingCount   int
		lastPerformed time.Time
		avoidReason   string
	}
	byExercise := make(map[string]*stats)
	var order []string
	for _, e := range history {
		s, ok := byExercise[e.ExerciseID]
		if !ok {
			s = &stats{}
			byExercise[e.ExerciseID] = s
			order = append(order, e.ExerciseID)
		}
		s.frequency++
		if e.PerformedAt.After(s.lastPerformed) {
			s.lastPerformed = e.PerformedAt
		}
		if e.Feedback.Enjoyment != nil {
			s.ratingSum += *e.Feedback.Enjoyment
			s.ratingCount++
			if *e.Feedback.Enjoyment < 3 && s.avoidReason == "" {
				s.avoidReason = avoidReason(e, "low enjoyment")
			}
		}
		if e.Pain == "severe" {
			s.avoidReason = avoidReason(e, "severe pain reported")
		}
	}

	var preferred []ExercisePreference
	var avoided []AvoidedExercise
	for _, id := range order {
		s := byExercise[id]
		pref := ExercisePreference{ExerciseID: id, Frequency: s.frequency}
		if s.ratingCount > 0 {
			pref.AvgRating = float64(s.ratingSum) / float64(s.ratingCount)
		}
		preferred = append(preferred, pref)
		if s.avoidReason != "" {
			avoided = append(avoided, AvoidedExercise{
				ExerciseID:    id,
				Reason:        s.avoidReason,
				LastAttempted: s.lastPerformed,
			})
		}
	}

	sort.SliceStable(preferred, func(i, j int) bool {
		if preferred[i].Frequency != preferred[j].Frequency {
			return preferred[i].Frequency > preferred[j].Frequency
		}
		return preferred[i].ExerciseID < preferred[j].ExerciseID
	})
	if len(preferred) > preferredExerciseCap {
		preferred = preferred[:preferredExerciseCap]
	}
	return preferred, avoided
}

// avoidReason prefers the user's own feedback comment over the canned
// explanation.
func avoidReason(e HistoryEntry, fallback string) string {
	if e.Feedback.Comments != "" {
		return e.Feedback.Comments
	}
	return fallback
}

// injuryRisk accumulates fixed penalties per risk signal, capped at 1.
func injuryRisk(history []HistoryEntry, prefs *Preferences, now time.Time) float64 {
	var risk float64
	weekAgo := now.AddDate(0, 0, -7)
	for _, e := range history {
		if e.Pain == "severe" && e.PerformedAt.After(weekAgo) {
			risk += 0.3
		}
		if e.Form == "poor" {
			risk += 0.1
		}
		if e.AverageRPE > 8 {
			risk += 0.05
		}
	}
	if prefs != nil {
		risk += 0.2 * float64(len(prefs.InjuryHistory))
	}
	if risk > 1 {
		return 1
	}
	return risk
}

// recoveryHours estimates hours needed between sessions from the mean RPE of
// the five newest entries.
func recoveryHours(history []HistoryEntry) int {
	if len(history) < recoveryMinEntries {
		return defaultRecoveryHours
	}
	var sum float64
	for _, e := range history[:recoveryMinEntries] {
		sum += e.AverageRPE
	}
	mean := sum / recoveryMinEntries
	switch {
	case mean < 5:
		return 24
	case mean < 7:
		return 48
	case mean < 9:
		return 72
	default:
		return 96
	}
}
