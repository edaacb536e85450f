package adaptive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

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

// get returns the stored record, or a fresh default when the user has no row
// yet. The default is not persisted until the first update.
func (r *sqliteRepository) get(ctx context.Context, userID int64) (Record, error) {
	var (
		record                           Record
		performanceJSON, patternsJSON    string
		progressJSON, recommendationJSON string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT user_id, exercise_performance, workout_patterns, progress_metrics,
		       recommendation, learning_rate, model_confidence, updated_at
		FROM adaptive_learning
		WHERE user_id = ?`, userID).Scan(
		&record.UserID, &performanceJSON, &patternsJSON, &progressJSON,
		&recommendationJSON, &record.LearningRate, &record.ModelConfidence,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return newRecord(userID), nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("query adaptive record: %w", err)
	}

	for _, field := range []struct {
		raw string
		dst any
	}{
		{performanceJSON, &record.Performance},
		{patternsJSON, &record.Patterns},
		{progressJSON, &record.Progress},
		{recommendationJSON, &record.Recommendation},
	} {
		if err = json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return Record{}, fmt.Errorf("decode adaptive field: %w", err)
		}
	}
	if record.Performance.Categories == nil {
		record.Performance.Categories = make(map[string]CategoryScore)
	}
	if record.Patterns.PreferredDays == nil {
		record.Patterns.PreferredDays = make(map[string]int)
	}
	return record, nil
}

// save upserts the one-per-user record.
func (r *sqliteRepository) save(ctx context.Context, record Record) error {
	performanceJSON, err := json.Marshal(record.Performance)
	if err != nil {
		return fmt.Errorf("encode performance: %w", err)
	}
	patternsJSON, err := json.Marshal(record.Patterns)
	if err != nil {
		return fmt.Errorf("encode patterns: %w", err)
	}
	progressJSON, err := json.Marshal(record.Progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	recommendationJSON, err := json.Marshal(record.Recommendation)
	if err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO adaptive_learning (
			user_id, exercise_performance, workout_patterns, progress_metrics,
			recommendation, learning_rate, model_confidence, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			exercise_performance = excluded.exercise_performance,
			workout_patterns = excluded.workout_patterns,
			progress_metrics = excluded.progress_metrics,
			recommendation = excluded.recommendation,
			learning_rate = excluded.learning_rate,
			model_confidence = excluded.model_confidence,
			updated_at = excluded.updated_at`,
		record.UserID, string(performanceJSON), string(patternsJSON), string(progressJSON),
		string(recommendationJSON), record.LearningRate, record.ModelConfidence,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save adaptive record: %w", err)
	}
	return nil
}
