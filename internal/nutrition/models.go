// Package nutrition computes calorie and macro targets from body composition
// and assembles weekly meal plans by scoring the meal catalog against those
// targets. Formulas are fixed (Mifflin-St Jeor plus rule tables) so results
// are fully deterministic and testable.
package nutrition

import "time"

// BodyComposition is the snapshot the calculator runs on. Weight in
// kilograms, height in centimetres.
type BodyComposition struct {
	Weight         float64 `json:"weight"`
	Height         float64 `json:"height"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	BodyFatPercent float64 `json:"bodyFatPercent"`
	ActivityLevel  string  `json:"activityLevel"`
}

// Goals describes what the user is working towards.
type Goals struct {
	PrimaryGoal   string  `json:"primaryGoal"`
	TargetWeight  float64 `json:"targetWeight,omitempty"`
	TargetBodyFat float64 `json:"targetBodyFat,omitempty"`
	TimelineWeeks int     `json:"timelineWeeks,omitempty"`
	Priority      string  `json:"priority,omitempty"`
}

// DietPreferences carries restrictions and tastes for meal selection.
type DietPreferences struct {
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	CuisinePreferences  []string `json:"cuisinePreferences"`
	MealsPerDay         int      `json:"mealsPerDay"`
}

// MacroTarget is one macronutrient target.
type MacroTarget struct {
	Grams   int `json:"grams"`
	Percent int `json:"percent"`
}

// Targets is the full calculated daily intake target.
type Targets struct {
	BMR            float64     `json:"bmr"`
	TDEE           int         `json:"tdee"`
	TargetCalories int         `json:"targetCalories"`
	CalorieDeficit int         `json:"calorieDeficit"`
	CalorieSurplus int         `json:"calorieSurplus"`
	Protein        MacroTarget `json:"protein"`
	Carbs          MacroTarget `json:"carbs"`
	Fat            MacroTarget `json:"fat"`
	FiberGrams     float64     `json:"fiberGrams"`
	WaterLiters    float64     `json:"waterLiters"`
	WaterGlasses   int         `json:"waterGlasses"`
}

// MealSlot is one named meal of the day with its calorie and macro share.
type MealSlot struct {
	Name     string  `json:"name"`
	MealType string  `json:"mealType"`
	Time     string  `json:"time"`
	Share    float64 `json:"share"`
	Calories int     `json:"calories"`
	Protein  int     `json:"protein"`
	Carbs    int     `json:"carbs"`
	Fat      int     `json:"fat"`
}

// PlannedMeal is a catalog meal assigned to a slot.
type PlannedMeal struct {
	Slot     string  `json:"slot"`
	Time     string  `json:"time"`
	MealID   int64   `json:"mealId"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Score    float64 `json:"score"`
}

// DayMealPlan is one weekday of the weekly plan.
type DayMealPlan struct {
	Weekday       string        `json:"weekday"`
	Meals         []PlannedMeal `json:"meals"`
	TotalCalories int           `json:"totalCalories"`
	TotalProtein  float64       `json:"totalProtein"`
	TotalCarbs    float64       `json:"totalCarbs"`
	TotalFat      float64       `json:"totalFat"`
}

// Profile is the one-per-user nutrition record.
type Profile struct {
	UserID           int64           `json:"userId"`
	Body             BodyComposition `json:"body"`
	Goals            Goals           `json:"goals"`
	Preferences      DietPreferences `json:"preferences"`
	Targets          Targets         `json:"targets"`
	MealDistribution []MealSlot      `json:"mealDistribution"`
	WeeklyPlan       []DayMealPlan   `json:"weeklyPlan"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// LoggedMeal is one consumed meal in a progress report. Either MealID points
// at a catalog meal or Custom carries the nutrition directly.
type LoggedMeal struct {
	MealID   *int64      `json:"mealId,omitempty"`
	Servings float64     `json:"servings"`
	Custom   *CustomFood `json:"custom,omitempty"`
}

// CustomFood is free-form nutrition for off-catalog meals.
type CustomFood struct {
	Name     string  `json:"name,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ProgressMetric reports one tracked value against its target.
type ProgressMetric struct {
	Actual     float64 `json:"actual"`
	Target     float64 `json:"target"`
	Percentage int     `json:"percentage"`
}

// Progress is the daily tracking summary.
type Progress struct {
	Date     time.Time      `json:"date"`
	Calories ProgressMetric `json:"calories"`
	Protein  ProgressMetric `json:"protein"`
	Carbs    ProgressMetric `json:"carbs"`
	Fat      ProgressMetric `json:"fat"`
}

// LogEntry is a persisted daily intake record.
type LogEntry struct {
	ID          int64     `json:"id"`
	LoggedAt    time.Time `json:"loggedAt"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	WaterLiters float64   `json:"waterLiters"`
	Weight      *float64  `json:"weight,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// Insights summarizes logged intake over a period.
type Insights struct {
	Period          string   `json:"period"`
	DaysLogged      int      `json:"daysLogged"`
	AvgCalories     float64  `json:"avgCalories"`
	AvgProtein      float64  `json:"avgProtein"`
	AvgCarbs        float64  `json:"avgCarbs"`
	AvgFat          float64  `json:"avgFat"`
	Consistency     float64  `json:"consistency"`
	CalorieTrend    string   `json:"calorieTrend"`
	ProteinTrend    string   `json:"proteinTrend"`
	Recommendations []string `json:"recommendations"`
}
