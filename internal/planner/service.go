package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

// Service exposes the workout planning operations.
type Service struct {
	repo   *sqliteRepository
	cache  *catalog.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a workout planning service.
func NewService(db *sqlite.Database, cache *catalog.Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Preferences returns the user's stored preferences, or nil if none exist.
func (s *Service) Preferences(ctx context.Context, userID int64) (*Preferences, error) {
	prefs, err := s.repo.getPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences upserts the user's preferences.
func (s *Service) SavePreferences(ctx context.Context, userID int64, prefs Preferences) error {
	if err := s.repo.savePreferences(ctx, userID, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// RecordHistory appends a workout performance entry, deriving the aggregate
// fields from the sets when the caller left them zero.
func (s *Service) RecordHistory(ctx context.Context, userID int64, entry HistoryEntry) (HistoryEntry, error) {
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = s.now()
	}
	deriveAggregates(&entry)

	id, err := s.repo.appendHistory(ctx, userID, entry)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("record history: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// History returns the user's workout history, newest first.
func (s *Service) History(ctx context.Context, userID int64, limit, offset int) ([]HistoryEntry, error) {
	entries, err := s.repo.listHistory(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Analyze runs the fitness analyzer over the user's stored history and
// preferences.
func (s *Service) Analyze(ctx context.Context, userID int64) (Analysis, error) {
	history, prefs, err := s.loadUserData(ctx, userID)
	if err != nil {
		return Analysis{}, err
	}
	return analyze(history, prefs, s.now()), nil
}

// GeneratePlan analyzes the user and synthesizes a personalized plan,
// persisting it as the new active plan version.
func (s *Service) GeneratePlan(
	ctx context.Context,
	userID int64,
	override *Preferences,
	goals []string,
	constraints Constraints,
) (*GeneratedPlan, error) {
	history, stored, err := s.loadUserData(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysisPrefs := stored
	if override != nil {
		analysisPrefs = override
	}
	analysis := analyze(history, analysisPrefs, s.now())

	prefs := defaultPreferences()
	if analysisPrefs != nil {
		prefs = *analysisPrefs
	}

	plan := generate(analysis, prefs, goals, constraints, s.cache.Exercises(catalog.ExerciseFilter{}))

	now := s.now()
	generated := &GeneratedPlan{
		ID:               uuid.NewString(),
		UserID:           userID,
		GenerationReason: generationReason(history),
		Plan:             plan,
		Factors:          personalizationFactors,
		Predictions:      predictions(analysis, plan),
		Confidence:       confidence(analysis, len(history) > 0),
		Recommendations:  planRecommendations(analysis),
		IsActive:         true,
		CreatedAt:        now,
		ExpiresAt:        now.AddDate(0, 0, planValidityDays),
	}

	if err = s.repo.savePlan(ctx, generated); err != nil {
		return nil, fmt.Errorf("persist plan: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated workout plan",
		slog.Int64("user_id", userID),
		slog.String("plan_id", generated.ID),
		slog.Int("version", generated.Version),
		slog.Float64("confidence", generated.Confidence))
	return generated, nil
}

// ActivePlan returns the user's current active, unexpired plan.
func (s *Service) ActivePlan(ctx context.Context, userID int64) (*GeneratedPlan, error) {
	plan, err := s.repo.activePlan(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("active plan: %w", err)
	}
	return plan, nil
}

// SavePlanFeedback attaches user feedback to the active plan.
func (s *Service) SavePlanFeedback(ctx context.Context, userID int64, feedback PlanFeedback) error {
	if feedback.SubmittedAt.IsZero() {
		feedback.SubmittedAt = s.now()
	}
	if err := s.repo.savePlanFeedback(ctx, userID, feedback); err != nil {
		return fmt.Errorf("save plan feedback: %w", err)
	}
	return nil
}

func (s *Service) loadUserData(ctx context.Context, userID int64) ([]HistoryEntry, *Preferences, error) {
	history, err := s.repo.listHistory(ctx, userID, historyWindow, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	prefs, err := s.repo.getPreferences(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load preferences: %w", err)
	}
	return history, prefs, nil
}

func generationReason(history []HistoryEntry) string {
	if len(history) == 0 {
		return "initial"
	}
	return "progression"
}

// confidence starts at 0.5 and earns fixed bonuses from the analysis. The
// injury-risk bonus requires actual history: a brand-new user has zero risk
// but that says nothing about them.
func confidence(analysis Analysis, hasHistory bool) float64 {
	result := 0.5
	if analysis.Consistency > 0.7 {
		result += 0.2
	}
	if analysis.ProgressionRate > 0.1 {
		result += 0.1
	}
	if hasHistory && analysis.InjuryRisk < 0.3 {
		result += 0.1
	}
	if analysis.MotivationLevel > 7 {
		result += 0.1
	}
	return math.Min(0.95, result)
}

func predictions(analysis Analysis, plan Plan) Predictions {
	return Predictions{
		ExpectedDifficulty:      math.Min(10, float64(analysis.MotivationLevel+2)),
		ExpectedDurationMinutes: plan.DurationSeconds / 60,
		ExpectedCalories:        expectedCaloriesPlaceholder,
		SuccessProbability:      math.Min(0.9, 0.5+analysis.Consistency*0.4),
	}
}

// deriveAggregates fills the derived fields from the raw sets when absent.
func deriveAggregates(entry *HistoryEntry) {
	if len(entry.Sets) == 0 {
		return
	}
	var (
		volume   float64
		rpeSum   int
		rpeCount int
	)
	for _, set := range entry.Sets {
		volume += float64(set.Reps) * set.Weight
		if set.Weight > entry.MaxWeight {
			entry.MaxWeight = set.Weight
		}
		if set.Reps > entry.MaxReps {
			entry.MaxReps = set.Reps
		}
		if set.RPE > 0 {
			rpeSum += set.RPE
			rpeCount++
		}
	}
	if entry.TotalVolume == 0 {
		entry.TotalVolume = volume
	}
	if entry.AverageRPE == 0 && rpeCount > 0 {
		entry.AverageRPE = float64(rpeSum) / float64(rpeCount)
	}
}
