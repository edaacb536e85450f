package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vuna-de/be-exe/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// Cache holds both catalogs in memory behind a read-write lock. Warm must be
// called once before serving; Refresh swaps in fresh data atomically.
type Cache struct {
	mu        sync.RWMutex
	repo      *sqliteRepository
	logger    *slog.Logger
	exercises []Exercise
	meals     []Meal
}

// NewCache creates an unwarmed catalog cache on top of the database.
func NewCache(db *sqlite.Database, logger *slog.Logger) *Cache {
	return &Cache{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Warm loads both catalogs concurrently.
func (c *Cache) Warm(ctx context.Context) error {
	start := time.Now()

	var (
		exercises []Exercise
		meals     []Meal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if exercises, err = c.repo.exercises(gctx); err != nil {
			return fmt.Errorf("load exercises: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if meals, err = c.repo.meals(gctx); err != nil {
			return fmt.Errorf("load meals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm catalog cache: %w", err)
	}

	c.mu.Lock()
	c.exercises = exercises
	c.meals = meals
	c.mu.Unlock()

	c.logger.LogAttrs(ctx, slog.LevelInfo, "warmed catalog cache",
		slog.Int("exercises", len(exercises)),
		slog.Int("meals", len(meals)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Refresh reloads the catalogs from the database.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.Warm(ctx)
}

// Exercises returns the exercises passing the filter.
func (c *Cache) Exercises(filter ExerciseFilter) []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Exercise
	for _, e := range c.exercises {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	return result
}

// ExerciseByID returns a single exercise. It hits the database directly so
// newly inserted rows are visible without a refresh.
func (c *Cache) ExerciseByID(ctx context.Context, id int64) (Exercise, error) {
	return c.repo.exerciseByID(ctx, id)
}

// MealByID returns a single cached meal or ErrNotFound.
func (c *Cache) MealByID(id int64) (Meal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.meals {
		if m.ID == id {
			return m, nil
		}
	}
	return Meal{}, fmt.Errorf("meal %d: %w", id, ErrNotFound)
}

// Meals returns the meals passing the filter.
func (c *Cache) Meals(filter MealFilter) []Meal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Meal
	for _, m := range c.meals {
		if filter.Matches(m) {
			result = append(result, m)
		}
	}
	return result
}
