package planner

// The numeric constants in this file are tunable heuristics, not derived
// values. They are kept as named tables so they can be reviewed and tested in
// isolation.

const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
	ExperienceExpert       = "expert"
)

// experienceOrdinal maps experience levels to a 1..4 difficulty scale.
var experienceOrdinal = map[string]int{
	ExperienceBeginner:     1,
	ExperienceIntermediate: 2,
	ExperienceAdvanced:     3,
	ExperienceExpert:       4,
}

// strengthBuckets and enduranceBuckets translate mean max weight and mean
// cardio minutes into levels. Entries are checked in order; the last level is
// the catch-all.
var strengthBuckets = []levelBucket{
	{upper: 20, level: ExperienceBeginner},
	{upper: 40, level: ExperienceIntermediate},
	{upper: 60, level: ExperienceAdvanced},
}

var enduranceBuckets = []levelBucket{
	{upper: 10, level: ExperienceBeginner},
	{upper: 20, level: ExperienceIntermediate},
	{upper: 30, level: ExperienceAdvanced},
}

type levelBucket struct {
	upper float64
	level string
}

func bucketLevel(buckets []levelBucket, value float64) string {
	for _, b := range buckets {
		if value < b.upper {
			return b.level
		}
	}
	return ExperienceExpert
}

// strengthLikeCategories marks history entries that count towards the
// strength level. Muscle-named categories come from clients that log by
// muscle group instead of the catalog category.
var strengthLikeCategories = map[string]bool{
	"strength":  true,
	"chest":     true,
	"back":      true,
	"shoulders": true,
	"biceps":    true,
	"triceps":   true,
}

const cardioCategory = "cardio"

// goalCategories maps a stated goal to acceptable exercise categories. A nil
// entry (general_fitness) means no category filter.
var goalCategories = map[string][]string{
	"weight_loss":     {"cardio", "hiit", "strength"},
	"muscle_gain":     {"strength", "hypertrophy"},
	"strength":        {"strength", "power"},
	"endurance":       {"cardio", "endurance"},
	"flexibility":     {"flexibility", "mobility"},
	"general_fitness": nil,
}

// focusRotation is cycled through per training day.
var focusRotation = []string{"upper_body", "lower_body", "core", "full_body", "cardio"}

// focusMuscles maps a day focus to accepted primary muscle groups. The cardio
// focus filters by category instead.
var focusMuscles = map[string][]string{
	"upper_body": {"chest", "back", "shoulders", "biceps", "triceps"},
	"lower_body": {"quadriceps", "hamstrings", "glutes", "calves", "legs"},
	"core":       {"core"},
	"full_body":  {"full body"},
}

// setsByLevel, weightByLevel and restByLevel are the base exercise parameters
// per experience level.
var setsByLevel = map[string]int{
	ExperienceBeginner:     2,
	ExperienceIntermediate: 3,
	ExperienceAdvanced:     4,
	ExperienceExpert:       5,
}

var weightByLevel = map[string]int{
	ExperienceBeginner:     5,
	ExperienceIntermediate: 15,
	ExperienceAdvanced:     30,
	ExperienceExpert:       50,
}

var restByLevel = map[string]int{
	ExperienceBeginner:     60,
	ExperienceIntermediate: 90,
	ExperienceAdvanced:     120,
	ExperienceExpert:       180,
}

// repsByGoal is the base rep count per primary goal.
var repsByGoal = map[string]int{
	"muscle_gain": 8,
	"strength":    5,
	"endurance":   15,
}

const defaultReps = 8

const (
	cardioSets = 1
	cardioReps = 1
	cardioRest = 30
)

const (
	maxStrengthSets = 6
	minExercises    = 4
	maxExercises    = 8
	// exerciseTakeRatio sizes the day from the candidate pool.
	exerciseTakeRatio = 0.3
)

// personalizationFactors is the fixed factor-weight table persisted with
// every generated plan.
var personalizationFactors = []Factor{
	{Name: "fitness_level", Weight: 0.30, Applied: true},
	{Name: "goals", Weight: 0.25, Applied: true},
	{Name: "equipment", Weight: 0.15, Applied: true},
	{Name: "time_constraints", Weight: 0.10, Applied: true},
	{Name: "injury_history", Weight: 0.10, Applied: true},
	{Name: "preferences", Weight: 0.05, Applied: true},
	{Name: "performance_history", Weight: 0.05, Applied: true},
}

// planNames and planDescriptions name the plan from the primary goal.
var planNames = map[string]string{
	"weight_loss":     "Fat Burn Program",
	"muscle_gain":     "Muscle Builder Program",
	"strength":        "Strength Foundation Program",
	"endurance":       "Endurance Builder Program",
	"flexibility":     "Mobility Program",
	"general_fitness": "Balanced Fitness Program",
}

var planDescriptions = map[string]string{
	"weight_loss":     "High-frequency training mixing cardio and strength work to maximise energy expenditure.",
	"muscle_gain":     "Hypertrophy-focused training with progressive volume increases.",
	"strength":        "Heavy compound work with long rests to build maximal strength.",
	"endurance":       "Sustained-effort sessions to build aerobic capacity.",
	"flexibility":     "Mobility and flexibility work to improve range of motion.",
	"general_fitness": "A balanced rotation across all movement patterns.",
}

const (
	// planValidityDays is how long a generated plan stays active.
	planValidityDays = 30
	// historyWindow caps how many entries the analyzer reads.
	historyWindow = 50
	// expectedCaloriesPlaceholder is a fixed prediction until real calorie
	// modelling exists.
	expectedCaloriesPlaceholder = 300
)
