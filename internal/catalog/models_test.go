package catalog_test

import (
	"testing"

	"github.com/vuna-de/be-exe/internal/catalog"
)

func TestExerciseFilterMatches(t *testing.T) {
	t.Parallel()

	benchPress := catalog.Exercise{
		ID:             1,
		Name:           "Bench press",
		Category:       "strength",
		PrimaryMuscles: []string{"chest"},
		Equipment:      []string{"barbell", "bench"},
		Difficulty:     "intermediate",
	}
	pushUp := catalog.Exercise{
		ID:             2,
		Name:           "Push-up",
		Category:       "strength",
		PrimaryMuscles: []string{"chest"},
		Equipment:      []string{},
		Difficulty:     "beginner",
	}

	tests := []struct {
		name     string
		filter   catalog.ExerciseFilter
		exercise catalog.Exercise
		want     bool
	}{
		{
			name:     "zero filter matches everything",
			filter:   catalog.ExerciseFilter{},
			exercise: benchPress,
			want:     true,
		},
		{
			name:     "category mismatch",
			filter:   catalog.ExerciseFilter{Category: "cardio"},
			exercise: benchPress,
			want:     false,
		},
		{
			name:     "muscle group match",
			filter:   catalog.ExerciseFilter{MuscleGroup: "chest"},
			exercise: benchPress,
			want:     true,
		},
		{
			name:     "missing equipment rejects",
			filter:   catalog.ExerciseFilter{Equipment: []string{"barbell"}},
			exercise: benchPress,
			want:     false,
		},
		{
			name:     "full equipment set passes",
			filter:   catalog.ExerciseFilter{Equipment: []string{"barbell", "bench", "rack"}},
			exercise: benchPress,
			want:     true,
		},
		{
			name:     "bodyweight passes an empty equipment list",
			filter:   catalog.ExerciseFilter{Equipment: []string{}},
			exercise: pushUp,
			want:     true,
		},
		{
			name:     "difficulty mismatch",
			filter:   catalog.ExerciseFilter{Difficulty: "beginner"},
			exercise: benchPress,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(tt.exercise); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMealFilterMatches(t *testing.T) {
	t.Parallel()

	stirFry := catalog.Meal{
		ID:       1,
		Name:     "Beef stir-fry",
		MealType: "dinner",
		Calories: 580,
		Tags:     []string{"beef"},
		Cuisine:  "asian",
	}

	tests := []struct {
		name   string
		filter catalog.MealFilter
		want   bool
	}{
		{
			name:   "zero filter matches",
			filter: catalog.MealFilter{},
			want:   true,
		},
		{
			name:   "meal type mismatch",
			filter: catalog.MealFilter{MealType: "breakfast"},
			want:   false,
		},
		{
			name:   "excluded tag rejects",
			filter: catalog.MealFilter{ExcludeTags: []string{"beef", "pork"}},
			want:   false,
		},
		{
			name:   "calorie ceiling rejects",
			filter: catalog.MealFilter{MaxCalories: 500},
			want:   false,
		},
		{
			name:   "cuisine match",
			filter: catalog.MealFilter{Cuisine: "asian"},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(stirFry); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
