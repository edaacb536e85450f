package planner

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

var ErrPlanNotFound = errors.NewSentinel("planner: plan not found")

// sqliteRepository handles database operations for preferences, workout
// history and generated plans.
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

// getPreferences returns the stored preferences, or nil if the user has never
// submitted any.
func (r *sqliteRepository) getPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	var (
		prefs                    Preferences
		goalsJSON, equipJSON     string
		typesJSON, injuriesJSON  string
		dietaryJSON, foodJSON    string
		socialJSON               string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT goals, experience_level, workout_frequency, workout_duration,
		       available_equipment, preferred_workout_types, injury_history,
		       dietary_restrictions, food_preferences, meal_frequency,
		       motivation_level, social
		FROM user_preferences
		WHERE user_id = ?`, userID).Scan(
		&goalsJSON,
		&prefs.ExperienceLevel,
		&prefs.WorkoutFrequency,
		&prefs.WorkoutDuration,
		&equipJSON,
		&typesJSON,
		&injuriesJSON,
		&dietaryJSON,
		&foodJSON,
		&prefs.MealFrequency,
		&prefs.MotivationLevel,
		&socialJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // absent preferences are a defined state, not an error.
	}
	if err != nil {
		return nil, fmt.Errorf("query user preferences: %w", err)
	}

	for _, field := range []struct {
		raw string
		dst any
	}{
		{goalsJSON, &prefs.Goals},
		{equipJSON, &prefs.AvailableEquipment},
		{typesJSON, &prefs.PreferredWorkoutTypes},
		{injuriesJSON, &prefs.InjuryHistory},
		{dietaryJSON, &prefs.DietaryRestrictions},
		{foodJSON, &prefs.FoodPreferences},
		{socialJSON, &prefs.Social},
	} {
		if err = json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return nil, fmt.Errorf("decode preferences field: %w", err)
		}
	}
	return &prefs, nil
}

// savePreferences upserts the one-per-user preference record.
func (r *sqliteRepository) savePreferences(ctx context.Context, userID int64, prefs Preferences) error {
	encoded := make([]string, 0, 7)
	for _, v := range []any{
		prefs.Goals, prefs.AvailableEquipment, prefs.PreferredWorkoutTypes,
		prefs.InjuryHistory, prefs.DietaryRestrictions, prefs.FoodPreferences,
		prefs.Social,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode preferences field: %w", err)
		}
		encoded = append(encoded, string(raw))
	}

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_preferences (
			user_id, goals, experience_level, workout_frequency, workout_duration,
			available_equipment, preferred_workout_types, injury_history,
			dietary_restrictions, food_preferences, meal_frequency,
			motivation_level, social, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			goals = excluded.goals,
			experience_level = excluded.experience_level,
			workout_frequency = excluded.workout_frequency,
			workout_duration = excluded.workout_duration,
			available_equipment = excluded.available_equipment,
			preferred_workout_types = excluded.preferred_workout_types,
			injury_history = excluded.injury_history,
			dietary_restrictions = excluded.dietary_restrictions,
			food_preferences = excluded.food_preferences,
			meal_frequency = excluded.meal_frequency,
			motivation_level = excluded.motivation_level,
			social = excluded.social,
			updated_at = CURRENT_TIMESTAMP`,
		userID, encoded[0], prefs.ExperienceLevel, prefs.WorkoutFrequency, prefs.WorkoutDuration,
		encoded[1], encoded[2], encoded[3], encoded[4], encoded[5],
		prefs.MealFrequency, prefs.MotivationLevel, encoded[6],
	)
	if err != nil {
		return fmt.Errorf("save user preferences: %w", err)
	}
	return nil
}

// appendHistory inserts a new history entry. History is append-only.
func (r *sqliteRepository) appendHistory(ctx context.Context, userID int64, entry HistoryEntry) (int64, error) {
	musclesJSON, err := json.Marshal(entry.PrimaryMuscles)
	if err != nil {
		return 0, fmt.Errorf("encode primary muscles: %w", err)
	}
	setsJSON, err := json.Marshal(entry.Sets)
	if err != nil {
		return 0, fmt.Errorf("encode sets: %w", err)
	}
	feedbackJSON, err := json.Marshal(entry.Feedback)
	if err != nil {
		return 0, fmt.Errorf("encode feedback: %w", err)
	}
	improvementsJSON, err := json.Marshal(entry.Improvements)
	if err != nil {
		return 0, fmt.Errorf("encode improvements: %w", err)
	}
	recommendationsJSON, err := json.Marshal(entry.Recommendations)
	if err != nil {
		return 0, fmt.Errorf("encode recommendations: %w", err)
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_history (
			user_id, exercise_id, exercise_category, primary_muscles, plan_id,
			session_id, performed_at, sets, total_volume, max_weight, max_reps,
			average_rpe, form, pain, feedback, improvements,
			next_session_recommendations
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, entry.ExerciseID, entry.ExerciseCategory, string(musclesJSON), entry.PlanID,
		entry.SessionID, entry.PerformedAt, string(setsJSON), entry.TotalVolume, entry.MaxWeight,
		entry.MaxReps, entry.AverageRPE, entry.Form, entry.Pain, string(feedbackJSON),
		string(improvementsJSON), string(recommendationsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert workout history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history insert id: %w", err)
	}
	return id, nil
}

// listHistory returns entries newest first.
func (r *sqliteRepository) listHistory(ctx context.Context, userID int64, limit, offset int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = historyWindow
	}
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, exercise_id, exercise_category, primary_muscles, plan_id,
		       session_id, performed_at, sets, total_volume, max_weight, max_reps,
		       average_rpe, form, pain, feedback, improvements,
		       next_session_recommendations
		FROM workout_history
		WHERE user_id = ?
		ORDER BY performed_at DESC, id DESC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query workout history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry                              HistoryEntry
			musclesJSON, setsJSON              string
			feedbackJSON, improvementsJSON     string
			recommendationsJSON                string
		)
		if err = rows.Scan(
			&entry.ID, &entry.ExerciseID, &entry.ExerciseCategory, &musclesJSON, &entry.PlanID,
			&entry.SessionID, &entry.PerformedAt, &setsJSON, &entry.TotalVolume, &entry.MaxWeight,
			&entry.MaxReps, &entry.AverageRPE, &entry.Form, &entry.Pain, &feedbackJSON,
			&improvementsJSON, &recommendationsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		for _, field := range []struct {
			raw string
			dst any
		}{
			{musclesJSON, &entry.PrimaryMuscles},
			{setsJSON, &entry.Sets},
			{feedbackJSON, &entry.Feedback},
			{improvementsJSON, &entry.Improvements},
			{recommendationsJSON, &entry.Recommendations},
		} {
			if err = json.Unmarshal([]byte(field.raw), field.dst); err != nil {
				return nil, fmt.Errorf("decode history field: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

// savePlan persists a generated plan, deactivating any prior active plan and
// assigning the next version number in the same transaction.
func (r *sqliteRepository) savePlan(ctx context.Context, plan *GeneratedPlan) error {
	planJSON, err := json.Marshal(plan.Plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	factorsJSON, err := json.Marshal(planMeta{
		Confidence:      plan.Confidence,
		Factors:         plan.Factors,
		Recommendations: plan.Recommendations,
	})
	if err != nil {
		return fmt.Errorf("encode factors: %w", err)
	}
	predictionsJSON, err := json.Marshal(plan.Predictions)
	if err != nil {
		return fmt.Errorf("encode predictions: %w", err)
	}

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	if _, err = tx.ExecContext(ctx, `
		UPDATE ai_workout_plans SET is_active = FALSE
		WHERE user_id = ? AND is_active = TRUE`, plan.UserID); err != nil {
		return fmt.Errorf("deactivate prior plans: %w", err)
	}

	var version int
	if err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM ai_workout_plans WHERE user_id = ?`,
		plan.UserID).Scan(&version); err != nil {
		return fmt.Errorf("next plan version: %w", err)
	}
	plan.Version = version

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO ai_workout_plans (
			id, user_id, version, generation_reason, plan, factors, predictions,
			is_active, created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)`,
		plan.ID, plan.UserID, plan.Version, plan.GenerationReason,
		string(planJSON), string(factorsJSON), string(predictionsJSON),
		plan.CreatedAt, plan.ExpiresAt,
	); err != nil {
		return fmt.Errorf("insert workout plan: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// planMeta is the factors column payload.
type planMeta struct {
	Confidence      float64  `json:"confidence"`
	Factors         []Factor `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// activePlan returns the user's current active, unexpired plan.
func (r *sqliteRepository) activePlan(ctx context.Context, userID int64, now time.Time) (*GeneratedPlan, error) {
	var (
		plan                       GeneratedPlan
		planJSON, factorsJSON      string
		predictionsJSON            string
		feedbackJSON               sql.NullString
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, version, generation_reason, plan, factors,
		       predictions, feedback, is_active, created_at, expires_at
		FROM ai_workout_plans
		WHERE user_id = ? AND is_active = TRUE AND expires_at > ?
		ORDER BY version DESC
		LIMIT 1`, userID, now).Scan(
		&plan.ID, &plan.UserID, &plan.Version, &plan.GenerationReason, &planJSON,
		&factorsJSON, &predictionsJSON, &feedbackJSON, &plan.IsActive,
		&plan.CreatedAt, &plan.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active plan for user %d: %w", userID, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query active plan: %w", err)
	}

	if err = json.Unmarshal([]byte(planJSON), &plan.Plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	var meta planMeta
	if err = json.Unmarshal([]byte(factorsJSON), &meta); err != nil {
		return nil, fmt.Errorf("decode plan factors: %w", err)
	}
	plan.Confidence = meta.Confidence
	plan.Factors = meta.Factors
	plan.Recommendations = meta.Recommendations
	if err = json.Unmarshal([]byte(predictionsJSON), &plan.Predictions); err != nil {
		return nil, fmt.Errorf("decode plan predictions: %w", err)
	}
	if feedbackJSON.Valid {
		plan.Feedback = &PlanFeedback{}
		if err = json.Unmarshal([]byte(feedbackJSON.String), plan.Feedback); err != nil {
			return nil, fmt.Errorf("decode plan feedback: %w", err)
		}
	}
	return &plan, nil
}

// savePlanFeedback attaches user feedback to the active plan.
func (r *sqliteRepository) savePlanFeedback(ctx context.Context, userID int64, feedback PlanFeedback) error {
	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("encode plan feedback: %w", err)
	}
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE ai_workout_plans SET feedback = ?
		WHERE user_id = ? AND is_active = TRUE`,
		string(feedbackJSON), userID)
	if err != nil {
		return fmt.Errorf("save plan feedback: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("feedback for user %d: %w", userID, ErrPlanNotFound)
	}
	return nil
}
