package nutrition

// Rule tables for the calculator. The values are fixed heuristics carried for
// behavioral compatibility, not derived constants.

// activityMultipliers turns BMR into TDEE.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

const defaultActivityMultiplier = 1.55

// goalCalorieAdjustments is added to TDEE per primary goal.
var goalCalorieAdjustments = map[string]int{
	"weight_loss": -500,
	"muscle_gain": 300,
	"performance": 200,
	"maintenance": 0,
	"health":      0,
}

// minCalories is the safety floor for the daily target.
const minCalories = 1200

// macroRatio is a protein/carbs/fat calorie split.
type macroRatio struct {
	protein float64
	carbs   float64
	fat     float64
}

// macroRatios is the base split per primary goal; body-fat adjustments are
// applied to a copy, never to these entries.
var macroRatios = map[string]macroRatio{
	"weight_loss": {protein: 0.30, carbs: 0.40, fat: 0.30},
	"muscle_gain": {protein: 0.35, carbs: 0.45, fat: 0.20},
	"maintenance": {protein: 0.25, carbs: 0.50, fat: 0.25},
	"performance": {protein: 0.30, carbs: 0.50, fat: 0.20},
	"health":      {protein: 0.25, carbs: 0.45, fat: 0.30},
}

const defaultGoal = "maintenance"

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// slotDef is one meal slot in a distribution.
type slotDef struct {
	name     string
	mealType string
	share    float64
	time     string
}

// mealDistributions is keyed by meals per day. Shares sum to 1.
var mealDistributions = map[int][]slotDef{
	3: {
		{name: "breakfast", mealType: "breakfast", share: 0.30, time: "07:00"},
		{name: "lunch", mealType: "lunch", share: 0.40, time: "12:00"},
		{name: "dinner", mealType: "dinner", share: 0.30, time: "19:00"},
	},
	4: {
		{name: "breakfast", mealType: "breakfast", share: 0.25, time: "07:00"},
		{name: "lunch", mealType: "lunch", share: 0.35, time: "12:00"},
		{name: "snack", mealType: "snack", share: 0.10, time: "15:00"},
		{name: "dinner", mealType: "dinner", share: 0.30, time: "19:00"},
	},
	5: {
		{name: "breakfast", mealType: "breakfast", share: 0.20, time: "07:00"},
		{name: "snack1", mealType: "snack", share: 0.10, time: "10:00"},
		{name: "lunch", mealType: "lunch", share: 0.30, time: "12:00"},
		{name: "snack2", mealType: "snack", share: 0.10, time: "15:00"},
		{name: "dinner", mealType: "dinner", share: 0.30, time: "19:00"},
	},
	6: {
		{name: "breakfast", mealType: "breakfast", share: 0.20, time: "07:00"},
		{name: "snack1", mealType: "snack", share: 0.10, time: "10:00"},
		{name: "lunch", mealType: "lunch", share: 0.25, time: "12:00"},
		{name: "snack2", mealType: "snack", share: 0.10, time: "15:00"},
		{name: "dinner", mealType: "dinner", share: 0.25, time: "19:00"},
		{name: "snack3", mealType: "snack", share: 0.10, time: "21:00"},
	},
}

const defaultMealsPerDay = 3

// restrictionTags maps a dietary restriction to the meal tags it excludes.
// Vegan extends vegetarian.
var restrictionTags = map[string][]string{
	"vegetarian":  {"meat", "chicken", "beef", "pork", "fish"},
	"vegan":       {"meat", "chicken", "beef", "pork", "fish", "dairy", "eggs"},
	"gluten_free": {"wheat", "gluten", "bread", "pasta"},
}

// calorieWindow is the ±fraction around a slot target that a candidate meal
// may occupy before the selector falls back to any meal of the type.
const calorieWindow = 0.2

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// goalTips are static coaching lines per primary goal.
var goalTips = map[string][]string{
	"weight_loss": {
		"Favour high-volume, low-calorie foods to stay full in a deficit.",
		"Weigh in weekly, not daily; water weight hides the trend.",
	},
	"muscle_gain": {
		"Spread protein across all meals rather than loading one.",
		"Expect slow scale movement; aim for roughly 0.25-0.5 kg per week.",
	},
}

// proteinPerKgFloor is the intake below which a protein recommendation fires.
const proteinPerKgFloor = 1.2
