package adaptive

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/planner"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

const (
	baseConfidence       = 0.5
	maxConfidence        = 0.95
	confidencePerSession = 0.02

	plateauProgressionFloor = 0.05
	plateauMinSessions      = 10

	severePain = "severe"

	defaultEnjoyment      = 5
	defaultProficiency    = 5
	defaultDurationMin    = 60
	maxSnapshotExercises  = 5
	maxSnapshotFocusAreas = 2

	consistencyWindowDays = 30
)

// analyzer is the slice of the planner the tracker needs.
type analyzer interface {
	Analyze(ctx context.Context, userID int64) (planner.Analysis, error)
}

// Tracker folds tracked workouts into the per-user learning record.
type Tracker struct {
	repo    *sqliteRepository
	planner analyzer
	cache   *catalog.Cache
	logger  *slog.Logger
	now     func() time.Time
}

func NewTracker(db *sqlite.Database, planSvc *planner.Service, cache *catalog.Cache, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:    newSQLiteRepository(db, logger),
		planner: planSvc,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// Profile returns the standing record, a fresh default for new users.
func (t *Tracker) Profile(ctx context.Context, userID int64) (Record, error) {
	return t.repo.get(ctx, userID)
}

// RecordWorkout merges one tracked session into the record: exercise lists and
// category scores are updated in place, the consistency and progression
// scalars are recomputed from the full history, and the recommendation
// snapshot is refreshed. The session itself must already be in the workout
// history before this is called.
func (t *Tracker) RecordWorkout(ctx context.Context, userID int64, entry planner.HistoryEntry) (Record, error) {
	record, err := t.repo.get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	analysis, err := t.planner.Analyze(ctx, userID)
	if err != nil {
		return Record{}, fmt.Errorf("analyze for adaptive update: %w", err)
	}
	now := t.now()

	t.mergeFavorites(&record, analysis, entry)
	t.mergeAvoided(&record, analysis, now)
	t.updateCategoryScore(&record, entry)
	t.updatePatterns(&record, analysis, entry)
	t.updateProgress(&record, analysis, entry, now)

	record.ModelConfidence = math.Min(maxConfidence,
		baseConfidence+confidencePerSession*float64(record.Patterns.SessionsTracked))
	record.Recommendation = t.snapshot(record, analysis)
	record.Progress.LastAnalysis = now
	record.UpdatedAt = now

	if err := t.repo.save(ctx, record); err != nil {
		return Record{}, err
	}
	t.logger.LogAttrs(ctx, slog.LevelInfo, "updated adaptive learning record",
		slog.Int64("user_id", userID),
		slog.Int("sessions_tracked", record.Patterns.SessionsTracked),
		slog.Float64("model_confidence", record.ModelConfidence))
	return record, nil
}

// RecordNutrition folds one day of tracked intake into the nutrition pattern
// statistics.
func (t *Tracker) RecordNutrition(ctx context.Context, userID int64, targetCalories int, actualCalories float64) (Record, error) {
	record, err := t.repo.get(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	now := t.now()

	if targetCalories > 0 {
		deviation := math.Abs(actualCalories-float64(targetCalories)) / float64(targetCalories)
		sample := math.Max(0, 1-deviation)
		record.Patterns.MacroTolerance = movingAverage(
			record.Patterns.MacroTolerance, sample, record.LearningRate,
			record.Patterns.NutritionDaysTracked == 0)
	}
	record.Patterns.NutritionDaysTracked++
	record.Patterns.MealTimingConsistency = math.Min(1,
		float64(record.Patterns.NutritionDaysTracked)/consistencyWindowDays)
	record.UpdatedAt = now

	if err := t.repo.save(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// mergeFavorites reconciles the analyzer's preferred list with the stored
// favorites. Existing favorites keep their place when the analyzer no longer
// lists them.
func (t *Tracker) mergeFavorites(record *Record, analysis planner.Analysis, entry planner.HistoryEntry) {
	for _, pref := range analysis.PreferredExercises {
		idx := -1
		for i, fav := range record.Performance.Favorites {
			if fav.ExerciseID == pref.ExerciseID {
				idx = i
				break
			}
		}
		if idx == -1 {
			record.Performance.Favorites = append(record.Performance.Favorites, FavoriteExercise{
				ExerciseID: pref.ExerciseID,
			})
			idx = len(record.Performance.Favorites) - 1
		}
		fav := &record.Performance.Favorites[idx]
		fav.Frequency = pref.Frequency
		fav.AvgRating = pref.AvgRating
		if pref.ExerciseID == entry.ExerciseID {
			fav.LastPerformed = entry.PerformedAt
		}
	}
	sort.SliceStable(record.Performance.Favorites, func(i, j int) bool {
		return record.Performance.Favorites[i].Frequency > record.Performance.Favorites[j].Frequency
	})
}

// mergeAvoided appends newly avoided exercises with a same-category
// substitute. Entries already present are left untouched.
func (t *Tracker) mergeAvoided(record *Record, analysis planner.Analysis, now time.Time) {
	for _, avoided := range analysis.AvoidedExercises {
		exists := false
		for _, have := range record.Performance.Avoided {
			if have.ExerciseID == avoided.ExerciseID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		record.Performance.Avoided = append(record.Performance.Avoided, AvoidedExercise{
			ExerciseID:  avoided.ExerciseID,
			Reason:      avoided.Reason,
			Alternative: t.suggestAlternative(avoided.ExerciseID, analysis.AvoidedExercises),
			RecordedAt:  now,
		})
	}
}

// suggestAlternative picks another catalog exercise from the same category
// that is not itself avoided.
func (t *Tracker) suggestAlternative(exerciseID string, avoided []planner.AvoidedExercise) string {
	source, ok := t.findExercise(exerciseID)
	if !ok {
		return ""
	}
	for _, candidate := range t.cache.Exercises(catalog.ExerciseFilter{Category: source.Category}) {
		if candidate.ID == source.ID {
			continue
		}
		if isAvoided(candidate, avoided) {
			continue
		}
		return candidate.Name
	}
	return ""
}

// findExercise resolves a history exercise ID, which may be a numeric catalog
// ID or a plain name.
func (t *Tracker) findExercise(exerciseID string) (catalog.Exercise, bool) {
	for _, e := range t.cache.Exercises(catalog.ExerciseFilter{}) {
		if strconv.FormatInt(e.ID, 10) == exerciseID || e.Name == exerciseID {
			return e, true
		}
	}
	return catalog.Exercise{}, false
}

func isAvoided(e catalog.Exercise, avoided []planner.AvoidedExercise) bool {
	for _, a := range avoided {
		if strconv.FormatInt(e.ID, 10) == a.ExerciseID || e.Name == a.ExerciseID {
			return true
		}
	}
	return false
}

// updateCategoryScore nudges the category's preference and proficiency moving
// averages towards the session's signals.
func (t *Tracker) updateCategoryScore(record *Record, entry planner.HistoryEntry) {
	category := entry.ExerciseCategory
	if category == "" {
		return
	}
	score := record.Performance.Categories[category]
	first := score.Sessions == 0

	enjoyment := float64(defaultEnjoyment)
	if entry.Feedback.Enjoyment != nil {
		enjoyment = float64(*entry.Feedback.Enjoyment)
	}
	score.Preference = movingAverage(score.Preference, enjoyment, record.LearningRate, first)

	proficiency := float64(defaultProficiency)
	if entry.AverageRPE > 0 {
		// Lower perceived exertion for completed work reads as higher
		// proficiency.
		proficiency = clamp(10-entry.AverageRPE, 0, 10)
	}
	score.Proficiency = movingAverage(score.Proficiency, proficiency, record.LearningRate, first)

	score.Sessions++
	record.Performance.Categories[category] = score
}

func (t *Tracker) updatePatterns(record *Record, analysis planner.Analysis, entry planner.HistoryEntry) {
	patterns := &record.Patterns
	day := strings.ToLower(entry.PerformedAt.Weekday().String())
	patterns.PreferredDays[day]++

	duration := sessionMinutes(entry)
	if duration > 0 {
		patterns.AvgDurationMinutes = movingAverage(
			patterns.AvgDurationMinutes, duration, record.LearningRate,
			patterns.SessionsTracked == 0)
	}
	patterns.Consistency = analysis.Consistency
	patterns.ProgressionRate = analysis.ProgressionRate
	patterns.SessionsTracked++
}

func (t *Tracker) updateProgress(record *Record, analysis planner.Analysis, entry planner.HistoryEntry, now time.Time) {
	progress := &record.Progress

	if gain := entry.Improvements.StrengthGain; gain > 0 {
		progress.StrengthGains = append(progress.StrengthGains, GainRecord{
			ExerciseID: entry.ExerciseID,
			Amount:     gain,
			RecordedAt: now,
		})
	}
	if entry.ExerciseCategory == "cardio" && entry.Improvements.VolumeIncrease > 0 {
		progress.EnduranceGains = append(progress.EnduranceGains, GainRecord{
			ExerciseID: entry.ExerciseID,
			Amount:     entry.Improvements.VolumeIncrease,
			RecordedAt: now,
		})
	}
	if entry.Pain == severePain {
		progress.Injuries = append(progress.Injuries, InjuryRecord{
			ExerciseID: entry.ExerciseID,
			RecordedAt: now,
		})
	}

	stalled := analysis.ProgressionRate < plateauProgressionFloor &&
		record.Patterns.SessionsTracked >= plateauMinSessions
	open := -1
	for i := range progress.Plateaus {
		if !progress.Plateaus[i].Resolved {
			open = i
			break
		}
	}
	switch {
	case stalled && open == -1:
		progress.Plateaus = append(progress.Plateaus, PlateauRecord{DetectedAt: now})
	case !stalled && open != -1:
		progress.Plateaus[open].Resolved = true
		progress.Plateaus[open].ResolvedAt = now
	}
}

// snapshot rebuilds the next-session recommendation from the merged record.
func (t *Tracker) snapshot(record Record, analysis planner.Analysis) Recommendation {
	rec := Recommendation{
		NextWorkoutType: "general",
		Intensity:       intensityFor(analysis.StrengthLevel),
		DurationMinutes: defaultDurationMin,
	}
	if record.Patterns.AvgDurationMinutes > 0 {
		rec.DurationMinutes = int(math.Round(record.Patterns.AvgDurationMinutes))
	}

	// Favor the best-liked category; focus on the weakest ones.
	type scored struct {
		category string
		score    CategoryScore
	}
	categories := make([]scored, 0, len(record.Performance.Categories))
	for category, score := range record.Performance.Categories {
		categories = append(categories, scored{category, score})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].score.Preference != categories[j].score.Preference {
			return categories[i].score.Preference > categories[j].score.Preference
		}
		return categories[i].category < categories[j].category
	})
	if len(categories) > 0 {
		rec.NextWorkoutType = categories[0].category
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].score.Proficiency != categories[j].score.Proficiency {
			return categories[i].score.Proficiency < categories[j].score.Proficiency
		}
		return categories[i].category < categories[j].category
	})
	for i := 0; i < len(categories) && i < maxSnapshotFocusAreas; i++ {
		rec.FocusAreas = append(rec.FocusAreas, categories[i].category)
	}

	for _, avoided := range record.Performance.Avoided {
		rec.AvoidAreas = append(rec.AvoidAreas, avoided.ExerciseID)
	}
	for _, fav := range record.Performance.Favorites {
		if len(rec.Exercises) == maxSnapshotExercises {
			break
		}
		if favAvoided(fav.ExerciseID, record.Performance.Avoided) {
			continue
		}
		rec.Exercises = append(rec.Exercises, fav.ExerciseID)
	}
	return rec
}

func favAvoided(exerciseID string, avoided []AvoidedExercise) bool {
	for _, a := range avoided {
		if a.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

func intensityFor(strengthLevel string) string {
	switch strengthLevel {
	case "advanced", "expert":
		return "high"
	case "intermediate":
		return "moderate"
	default:
		return "low"
	}
}

func sessionMinutes(entry planner.HistoryEntry) float64 {
	var seconds int
	for _, s := range entry.Sets {
		seconds += s.Duration + s.RestTime
	}
	return float64(seconds) / 60
}

// movingAverage nudges current towards sample by rate; the first observation
// seeds the average directly.
func movingAverage(current, sample, rate float64, first bool) float64 {
	if first {
		return sample
	}
	return current + rate*(sample-current)
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
