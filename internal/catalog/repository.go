package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

var ErrNotFound = errors.NewSentinel("catalog: not found")

// sqliteRepository loads the catalogs from the database.
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

// exercises returns every exercise in the library.
func (r *sqliteRepository) exercises(ctx context.Context) ([]Exercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, category, primary_muscles, secondary_muscles, equipment, difficulty, description
		FROM exercises
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var result []Exercise
	for rows.Next() {
		var (
			e                                  Exercise
			primaryJSON, secondaryJSON, equipJSON string
		)
		if err = rows.Scan(&e.ID, &e.Name, &e.Category, &primaryJSON, &secondaryJSON, &equipJSON,
			&e.Difficulty, &e.Description); err != nil {
			return nil, fmt.Errorf("scan exercise row: %w", err)
		}
		if err = unmarshalStrings(primaryJSON, &e.PrimaryMuscles); err != nil {
			return nil, fmt.Errorf("decode primary muscles for exercise %d: %w", e.ID, err)
		}
		if err = unmarshalStrings(secondaryJSON, &e.SecondaryMuscles); err != nil {
			return nil, fmt.Errorf("decode secondary muscles for exercise %d: %w", e.ID, err)
		}
		if err = unmarshalStrings(equipJSON, &e.Equipment); err != nil {
			return nil, fmt.Errorf("decode equipment for exercise %d: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise rows: %w", err)
	}
	return result, nil
}

// exerciseByID returns a single exercise or ErrNotFound.
func (r *sqliteRepository) exerciseByID(ctx context.Context, id int64) (Exercise, error) {
	var (
		e                                  Exercise
		primaryJSON, secondaryJSON, equipJSON string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, category, primary_muscles, secondary_muscles, equipment, difficulty, description
		FROM exercises
		WHERE id = ?`, id).Scan(&e.ID, &e.Name, &e.Category, &primaryJSON, &secondaryJSON, &equipJSON,
		&e.Difficulty, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}
	if err = unmarshalStrings(primaryJSON, &e.PrimaryMuscles); err != nil {
		return Exercise{}, fmt.Errorf("decode primary muscles: %w", err)
	}
	if err = unmarshalStrings(secondaryJSON, &e.SecondaryMuscles); err != nil {
		return Exercise{}, fmt.Errorf("decode secondary muscles: %w", err)
	}
	if err = unmarshalStrings(equipJSON, &e.Equipment); err != nil {
		return Exercise{}, fmt.Errorf("decode equipment: %w", err)
	}
	return e, nil
}

// meals returns every meal in the library.
func (r *sqliteRepository) meals(ctx context.Context) ([]Meal, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, meal_type, calories, protein, carbs, fat, tags, cuisine, prep_minutes, recipe
		FROM meals
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var result []Meal
	for rows.Next() {
		var (
			m        Meal
			tagsJSON string
		)
		if err = rows.Scan(&m.ID, &m.Name, &m.MealType, &m.Calories, &m.Protein, &m.Carbs, &m.Fat,
			&tagsJSON, &m.Cuisine, &m.PrepMinutes, &m.Recipe); err != nil {
			return nil, fmt.Errorf("scan meal row: %w", err)
		}
		if err = unmarshalStrings(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for meal %d: %w", m.ID, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal rows: %w", err)
	}
	return result, nil
}

func unmarshalStrings(raw string, dst *[]string) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	return nil
}
