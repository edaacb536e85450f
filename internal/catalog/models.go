// Package catalog serves the exercise and meal libraries that plan generation
// draws from. The catalogs are small and read-heavy, so they are loaded into
// an in-memory cache at startup and refreshed on demand.
package catalog

import "slices"

// Exercise is a single entry in the exercise library.
type Exercise struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipment        []string `json:"equipment"`
	Difficulty       string   `json:"difficulty"`
	Description      string   `json:"description"`
}

// Meal is a single entry in the meal library.
type Meal struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	MealType    string   `json:"mealType"`
	Calories    int      `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Tags        []string `json:"tags"`
	Cuisine     string   `json:"cuisine"`
	PrepMinutes int      `json:"prepMinutes"`
	Recipe      string   `json:"recipe"`
}

// ExerciseFilter narrows the exercise catalog. Zero values match everything.
type ExerciseFilter struct {
	Category    string
	Difficulty  string
	MuscleGroup string
	// Equipment lists what the user has available. When non-nil, only
	// exercises whose required equipment is a subset of it pass.
	Equipment []string
}

// MealFilter narrows the meal catalog. Zero values match everything.
type MealFilter struct {
	MealType    string
	Cuisine     string
	MaxCalories int
	// ExcludeTags rejects meals carrying any of the given tags, used for
	// dietary restrictions such as vegetarian or gluten_free.
	ExcludeTags []string
}

// Matches reports whether the exercise passes the filter.
func (f ExerciseFilter) Matches(e Exercise) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && e.Difficulty != f.Difficulty {
		return false
	}
	if f.MuscleGroup != "" && !slices.Contains(e.PrimaryMuscles, f.MuscleGroup) {
		return false
	}
	if f.Equipment != nil {
		for _, required := range e.Equipment {
			if !slices.Contains(f.Equipment, required) {
				return false
			}
		}
	}
	return true
}

// Matches reports whether the meal passes the filter.
func (f MealFilter) Matches(m Meal) bool {
	if f.MealType != "" && m.MealType != f.MealType {
		return false
	}
	if f.Cuisine != "" && m.Cuisine != f.Cuisine {
		return false
	}
	if f.MaxCalories > 0 && m.Calories > f.MaxCalories {
		return false
	}
	for _, tag := range f.ExcludeTags {
		if slices.Contains(m.Tags, tag) {
			return false
		}
	}
	return true
}
