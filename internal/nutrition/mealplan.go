package nutrition

import (
	"math"

	"github.com/vuna-de/be-exe/internal/catalog"
)

// buildWeeklyPlan assigns a catalog meal to every weekday and slot. Selection
// is fully deterministic: same catalog and targets, same plan.
func buildWeeklyPlan(meals []catalog.Meal, slots []MealSlot, prefs DietPreferences) []DayMealPlan {
	excluded := excludedTags(prefs.DietaryRestrictions)

	plan := make([]DayMealPlan, 0, len(weekdays))
	for _, weekday := range weekdays {
		day := DayMealPlan{Weekday: weekday}
		for _, slot := range slots {
			meal, score, found := selectMeal(meals, slot, excluded, prefs.CuisinePreferences)
			if !found {
				continue
			}
			day.Meals = append(day.Meals, PlannedMeal{
				Slot:     slot.Name,
				Time:     slot.Time,
				MealID:   meal.ID,
				Name:     meal.Name,
				Calories: meal.Calories,
				Protein:  meal.Protein,
				Carbs:    meal.Carbs,
				Fat:      meal.Fat,
				Score:    score,
			})
			day.TotalCalories += meal.Calories
			day.TotalProtein += meal.Protein
			day.TotalCarbs += meal.Carbs
			day.TotalFat += meal.Fat
		}
		plan = append(plan, day)
	}
	return plan
}

// excludedTags expands dietary restrictions into the meal tags to reject.
func excludedTags(restrictions []string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, r := range restrictions {
		for _, tag := range restrictionTags[r] {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// selectMeal finds the best catalog meal for a slot: right type, calories
// within the window, restrictions and cuisine honored. When the strict
// filters leave nothing it relaxes to any meal of the type, so a populated
// catalog never yields an empty slot.
func selectMeal(
	meals []catalog.Meal,
	slot MealSlot,
	excluded []string,
	cuisines []string,
) (catalog.Meal, float64, bool) {
	window := float64(slot.Calories) * calorieWindow
	strict := catalog.MealFilter{
		MealType:    slot.MealType,
		ExcludeTags: excluded,
	}

	var candidates []catalog.Meal
	for _, m := range meals {
		if !strict.Matches(m) {
			continue
		}
		if math.Abs(float64(m.Calories-slot.Calories)) > window {
			continue
		}
		if len(cuisines) > 0 && m.Cuisine != "" && !containsString(cuisines, m.Cuisine) {
			continue
		}
		candidates = append(candidates, m)
	}

	// Relaxed fallback: any meal of the correct type.
	if len(candidates) == 0 {
		typeOnly := catalog.MealFilter{MealType: slot.MealType}
		for _, m := range meals {
			if typeOnly.Matches(m) {
				candidates = append(candidates, m)
			}
		}
	}
	if len(candidates) == 0 {
		return catalog.Meal{}, 0, false
	}

	best := candidates[0]
	bestScore := scoreMeal(best, slot)
	for _, m := range candidates[1:] {
		score := scoreMeal(m, slot)
		if score > bestScore || (score == bestScore && m.ID < best.ID) {
			best = m
			bestScore = score
		}
	}
	return best, bestScore, true
}

// scoreMeal rewards closeness to the slot's macro and calorie targets.
func scoreMeal(m catalog.Meal, slot MealSlot) float64 {
	return 100 - (math.Abs(m.Protein-float64(slot.Protein)) +
		math.Abs(m.Carbs-float64(slot.Carbs)) +
		math.Abs(m.Fat-float64(slot.Fat)) +
		math.Abs(float64(m.Calories-slot.Calories))/10)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
