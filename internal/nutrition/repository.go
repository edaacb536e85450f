package nutrition

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

var ErrProfileNotFound = errors.NewSentinel("nutrition: profile not found")

// sqliteRepository persists nutrition profiles and daily intake logs.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// profileInputs is the inputs column payload.
type profileInputs struct {
	Body        BodyComposition `json:"body"`
	Goals       Goals           `json:"goals"`
	Preferences DietPreferences `json:"preferences"`
}

// saveProfile upserts the one-per-user nutrition record.
func (r *sqliteRepository) saveProfile(ctx context.Context, profile Profile) error {
	targetsJSON, err := json.Marshal(profile.Targets)
	if err != nil {
		return fmt.Errorf("encode targets: %w", err)
	}
	distributionJSON, err := json.Marshal(profile.MealDistribution)
	if err != nil {
		return fmt.Errorf("encode meal distribution: %w", err)
	}
	weeklyJSON, err := json.Marshal(profile.WeeklyPlan)
	if err != nil {
		return fmt.Errorf("encode weekly plan: %w", err)
	}
	inputsJSON, err := json.Marshal(profileInputs{
		Body:        profile.Body,
		Goals:       profile.Goals,
		Preferences: profile.Preferences,
	})
	if err != nil {
		return fmt.Errorf("encode inputs: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO nutrition_profiles (
			user_id, bmr, tdee, target_calories, targets, meal_distribution,
			weekly_plan, inputs, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			bmr = excluded.bmr,
			tdee = excluded.tdee,
			target_calories = excluded.target_calories,
			targets = excluded.targets,
			meal_distribution = excluded.meal_distribution,
			weekly_plan = excluded.weekly_plan,
			inputs = excluded.inputs,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.Targets.BMR, profile.Targets.TDEE, profile.Targets.TargetCalories,
		string(targetsJSON), string(distributionJSON), string(weeklyJSON), string(inputsJSON),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save nutrition profile: %w", err)
	}
	return nil
}

// getProfile returns the stored profile or ErrProfileNotFound.
func (r *sqliteRepository) getProfile(ctx context.Context, userID int64) (Profile, error) {
	var (
		profile                       Profile
		targetsJSON, distributionJSON string
		weeklyJSON, inputsJSON        string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT user_id, targets, meal_distribution, weekly_plan, inputs, updated_at
		FROM nutrition_profiles
		WHERE user_id = ?`, userID).Scan(
		&profile.UserID, &targetsJSON, &distributionJSON, &weeklyJSON, &inputsJSON,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile for user %d: %w", userID, ErrProfileNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query nutrition profile: %w", err)
	}

	var inputs profileInputs
	for _, field := range []struct {
		raw string
		dst any
	}{
		{targetsJSON, &profile.Targets},
		{distributionJSON, &profile.MealDistribution},
		{weeklyJSON, &profile.WeeklyPlan},
		{inputsJSON, &inputs},
	} {
		if err = json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return Profile{}, fmt.Errorf("decode profile field: %w", err)
		}
	}
	profile.Body = inputs.Body
	profile.Goals = inputs.Goals
	profile.Preferences = inputs.Preferences
	return profile, nil
}

// insertLog appends a daily intake record.
func (r *sqliteRepository) insertLog(ctx context.Context, userID int64, entry LogEntry) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO nutrition_logs (
			user_id, logged_at, calories, protein, carbs, fat, water_liters, weight, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, entry.LoggedAt, entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		entry.WaterLiters, entry.Weight, entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert nutrition log: %w", err)
	}
	return nil
}

// listLogs returns logs since the cutoff, newest first.
func (r *sqliteRepository) listLogs(ctx context.Context, userID int64, since time.Time) ([]LogEntry, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, logged_at, calories, protein, carbs, fat, water_liters, weight, notes
		FROM nutrition_logs
		WHERE user_id = ? AND logged_at >= ?
		ORDER BY logged_at DESC, id DESC`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("query nutrition logs: %w", err)
	}
	defer rows.Close()

	var logs []LogEntry
	for rows.Next() {
		var entry LogEntry
		if err = rows.Scan(&entry.ID, &entry.LoggedAt, &entry.Calories, &entry.Protein,
			&entry.Carbs, &entry.Fat, &entry.WaterLiters, &entry.Weight, &entry.Notes); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		logs = append(logs, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log rows: %w", err)
	}
	return logs, nil
}
