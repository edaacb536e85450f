package nutrition

import "math"

// calculateTargets derives the full daily intake target from body composition
// and the primary goal.
func calculateTargets(body BodyComposition, goals Goals) Targets {
	bmrValue := bmr(body)
	tdee := int(math.Round(bmrValue * activityMultiplier(body.ActivityLevel)))
	calories := targetCalories(tdee, goals.PrimaryGoal)
	ratio := adjustedRatio(goals.PrimaryGoal, body.BodyFatPercent)

	waterMl := body.Weight * 35
	return Targets{
		BMR:            bmrValue,
		TDEE:           tdee,
		TargetCalories: calories,
		CalorieDeficit: max(0, tdee-calories),
		CalorieSurplus: max(0, calories-tdee),
		Protein: MacroTarget{
			Grams:   int(math.Round(float64(calories) * ratio.protein / caloriesPerGramProtein)),
			Percent: int(math.Round(ratio.protein * 100)),
		},
		Carbs: MacroTarget{
			Grams:   int(math.Round(float64(calories) * ratio.carbs / caloriesPerGramCarbs)),
			Percent: int(math.Round(ratio.carbs * 100)),
		},
		Fat: MacroTarget{
			Grams:   int(math.Round(float64(calories) * ratio.fat / caloriesPerGramFat)),
			Percent: int(math.Round(ratio.fat * 100)),
		},
		FiberGrams:   body.Weight*0.5 + 14,
		WaterLiters:  math.Round(waterMl/1000*10) / 10,
		WaterGlasses: int(math.Round(waterMl / 250)),
	}
}

// bmr is the Mifflin-St Jeor basal metabolic rate.
func bmr(body BodyComposition) float64 {
	base := 10*body.Weight + 6.25*body.Height - 5*float64(body.Age)
	if body.Gender == "male" {
		return base + 5
	}
	return base - 161
}

func activityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

func targetCalories(tdee int, goal string) int {
	calories := tdee + goalCalorieAdjustments[goal]
	if calories < minCalories {
		return minCalories
	}
	return calories
}

// adjustedRatio copies the goal's base split and shifts it for body fat. The
// shared table is never mutated.
func adjustedRatio(goal string, bodyFatPercent float64) macroRatio {
	ratio, ok := macroRatios[goal]
	if !ok {
		ratio = macroRatios[defaultGoal]
	}
	switch {
	case bodyFatPercent > 25:
		ratio.protein = math.Min(0.40, ratio.protein+0.05)
		ratio.carbs = math.Max(0.35, ratio.carbs-0.05)
	case bodyFatPercent > 0 && bodyFatPercent < 15:
		ratio.carbs = math.Min(0.55, ratio.carbs+0.05)
		ratio.protein = math.Max(0.25, ratio.protein-0.05)
	}
	return ratio
}

// mealDistribution splits the daily target across the configured number of
// meals. Unknown counts fall back to three meals.
func mealDistribution(targets Targets, mealsPerDay int) []MealSlot {
	slots, ok := mealDistributions[mealsPerDay]
	if !ok {
		slots = mealDistributions[defaultMealsPerDay]
	}
	result := make([]MealSlot, 0, len(slots))
	for _, s := range slots {
		result = append(result, MealSlot{
			Name:     s.name,
			MealType: s.mealType,
			Time:     s.time,
			Share:    s.share,
			Calories: int(math.Round(float64(targets.TargetCalories) * s.share)),
			Protein:  int(math.Round(float64(targets.Protein.Grams) * s.share)),
			Carbs:    int(math.Round(float64(targets.Carbs.Grams) * s.share)),
			Fat:      int(math.Round(float64(targets.Fat.Grams) * s.share)),
		})
	}
	return result
}
