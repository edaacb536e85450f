package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

const (
	weekWindowDays  = 7
	monthWindowDays = 30
)

// ErrInvalidMeal marks a logged meal that cannot be resolved to nutrition
// values.
var ErrInvalidMeal = errors.NewSentinel("nutrition: invalid logged meal")

// Service owns nutrition profiles, daily tracking and insights.
type Service struct {
	repo   *sqliteRepository
	cache  *catalog.Cache
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *sqlite.Database, cache *catalog.Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Calculate computes targets, the meal distribution and a weekly meal plan
// for the user and stores the resulting profile.
func (s *Service) Calculate(
	ctx context.Context,
	userID int64,
	body BodyComposition,
	goals Goals,
	prefs DietPreferences,
) (Profile, error) {
	targets := calculateTargets(body, goals)
	slots := mealDistribution(targets, prefs.MealsPerDay)
	weekly := buildWeeklyPlan(s.cache.Meals(catalog.MealFilter{}), slots, prefs)

	profile := Profile{
		UserID:           userID,
		Body:             body,
		Goals:            goals,
		Preferences:      prefs,
		Targets:          targets,
		MealDistribution: slots,
		WeeklyPlan:       weekly,
		UpdatedAt:        s.now(),
	}
	if err := s.repo.saveProfile(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("calculate nutrition: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "calculated nutrition profile",
		slog.Int64("user_id", userID),
		slog.Int("target_calories", targets.TargetCalories),
		slog.String("goal", goals.PrimaryGoal))
	return profile, nil
}

// Current returns the stored profile or ErrProfileNotFound.
func (s *Service) Current(ctx context.Context, userID int64) (Profile, error) {
	return s.repo.getProfile(ctx, userID)
}

// Recommendations builds coaching advice from the profile and the last week
// of logged intake.
func (s *Service) Recommendations(ctx context.Context, userID int64) ([]string, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.listLogs(ctx, userID, s.now().AddDate(0, 0, -weekWindowDays))
	if err != nil {
		return nil, err
	}
	return recommendations(profile, logs), nil
}

// DailyLog is one day of consumed meals to track.
type DailyLog struct {
	Date        time.Time    `json:"date"`
	Meals       []LoggedMeal `json:"meals"`
	WaterLiters float64      `json:"waterLiters"`
	Weight      *float64     `json:"weight,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// TrackProgress sums the day's meals, persists the log entry and reports each
// tracked value against its target. Catalog meals are resolved by ID; custom
// foods carry their own nutrition.
func (s *Service) TrackProgress(ctx context.Context, userID int64, day DailyLog) (Progress, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return Progress{}, err
	}

	var calories, protein, carbs, fat float64
	for i, logged := range day.Meals {
		servings := logged.Servings
		if servings <= 0 {
			servings = 1
		}
		switch {
		case logged.MealID != nil:
			meal, err := s.cache.MealByID(*logged.MealID)
			if err != nil {
				return Progress{}, fmt.Errorf("track meal %d (%v): %w", i, err, ErrInvalidMeal)
			}
			calories += float64(meal.Calories) * servings
			protein += meal.Protein * servings
			carbs += meal.Carbs * servings
			fat += meal.Fat * servings
		case logged.Custom != nil:
			calories += logged.Custom.Calories * servings
			protein += logged.Custom.Protein * servings
			carbs += logged.Custom.Carbs * servings
			fat += logged.Custom.Fat * servings
		default:
			return Progress{}, fmt.Errorf("track meal %d: neither meal id nor custom food given: %w", i, ErrInvalidMeal)
		}
	}

	date := day.Date
	if date.IsZero() {
		date = s.now()
	}
	entry := LogEntry{
		LoggedAt:    date,
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		WaterLiters: day.WaterLiters,
		Weight:      day.Weight,
		Notes:       day.Notes,
	}
	if err := s.repo.insertLog(ctx, userID, entry); err != nil {
		return Progress{}, err
	}

	return Progress{
		Date:     date,
		Calories: progressMetric(calories, float64(profile.Targets.TargetCalories)),
		Protein:  progressMetric(protein, float64(profile.Targets.Protein.Grams)),
		Carbs:    progressMetric(carbs, float64(profile.Targets.Carbs.Grams)),
		Fat:      progressMetric(fat, float64(profile.Targets.Fat.Grams)),
	}, nil
}

// Insights summarizes logged intake over "week" or "month".
func (s *Service) Insights(ctx context.Context, userID int64, period string) (Insights, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return Insights{}, err
	}

	windowDays := weekWindowDays
	if period == "month" {
		windowDays = monthWindowDays
	} else {
		period = "week"
	}
	logs, err := s.repo.listLogs(ctx, userID, s.now().AddDate(0, 0, -windowDays))
	if err != nil {
		return Insights{}, err
	}
	return buildInsights(profile, logs, period, windowDays), nil
}

func progressMetric(actual, target float64) ProgressMetric {
	metric := ProgressMetric{Actual: actual, Target: target}
	if target > 0 {
		metric.Percentage = int(math.Round(actual / target * 100))
	}
	return metric
}
