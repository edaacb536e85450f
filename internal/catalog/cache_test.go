package catalog_test

import (
	"testing"

	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/sqlite"
	"github.com/vuna-de/be-exe/internal/testhelpers"
)

func newTestCache(t *testing.T) *catalog.Cache {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	cache := catalog.NewCache(db, logger)
	if err = cache.Warm(ctx); err != nil {
		t.Fatalf("Failed to warm cache: %v", err)
	}
	return cache
}

func TestCacheWarmAndFilter(t *testing.T) {
	t.Parallel()
	cache := newTestCache(t)

	all := cache.Exercises(catalog.ExerciseFilter{})
	if len(all) == 0 {
		t.Fatal("expected seeded exercises")
	}

	// Bodyweight-only users must still have a usable strength catalog.
	bodyweight := cache.Exercises(catalog.ExerciseFilter{Category: "strength", Equipment: []string{}})
	if len(bodyweight) < 4 {
		t.Errorf("expected at least 4 bodyweight strength exercises, got %d", len(bodyweight))
	}
	for _, e := range bodyweight {
		if len(e.Equipment) != 0 {
			t.Errorf("exercise %q requires equipment %v", e.Name, e.Equipment)
		}
	}

	vegan := cache.Meals(catalog.MealFilter{ExcludeTags: []string{"meat", "chicken", "beef", "pork", "fish", "dairy", "eggs"}})
	if len(vegan) == 0 {
		t.Fatal("expected vegan-compatible meals in the seed catalog")
	}
	for _, m := range vegan {
		for _, tag := range m.Tags {
			switch tag {
			case "meat", "chicken", "beef", "pork", "fish", "dairy", "eggs":
				t.Errorf("meal %q carries excluded tag %q", m.Name, tag)
			}
		}
	}
}

func TestCacheExerciseByID(t *testing.T) {
	t.Parallel()
	cache := newTestCache(t)
	ctx := t.Context()

	all := cache.Exercises(catalog.ExerciseFilter{})
	if len(all) == 0 {
		t.Fatal("expected seeded exercises")
	}

	got, err := cache.ExerciseByID(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("ExerciseByID: %v", err)
	}
	if got.Name != all[0].Name {
		t.Errorf("ExerciseByID() name = %q, want %q", got.Name, all[0].Name)
	}

	if _, err = cache.ExerciseByID(ctx, 999999); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("ExerciseByID(unknown) error = %v, want ErrNotFound", err)
	}
}
