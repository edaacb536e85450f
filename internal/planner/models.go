// Package planner derives a fitness analysis from workout history and
// synthesizes progressive multi-week workout plans from it. All heuristics are
// deterministic rule tables; there is no trained model anywhere.
package planner

import "time"

// Injury is a single entry in the user's injury history.
type Injury struct {
	BodyPart     string   `json:"bodyPart"`
	Severity     string   `json:"severity"`
	Recovered    bool     `json:"recovered"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// Social captures how the user wants to train with others.
type Social struct {
	ShareProgress bool `json:"shareProgress"`
	GroupWorkouts bool `json:"groupWorkouts"`
}

// Preferences is the one-per-user preference record.
type Preferences struct {
	Goals                 []string `json:"goals"`
	ExperienceLevel       string   `json:"experienceLevel"`
	WorkoutFrequency      int      `json:"workoutFrequency"`
	WorkoutDuration       int      `json:"workoutDuration"`
	AvailableEquipment    []string `json:"availableEquipment"`
	PreferredWorkoutTypes []string `json:"preferredWorkoutTypes"`
	InjuryHistory         []Injury `json:"injuryHistory"`
	DietaryRestrictions   []string `json:"dietaryRestrictions"`
	FoodPreferences       []string `json:"foodPreferences"`
	MealFrequency         int      `json:"mealFrequency"`
	MotivationLevel       int      `json:"motivationLevel"`
	Social                Social   `json:"social"`
}

// defaultPreferences is what the planner assumes when the user has never
// submitted preferences. AvailableEquipment stays nil, meaning no equipment
// filtering.
func defaultPreferences() Preferences {
	return Preferences{
		Goals:            []string{"general_fitness"},
		ExperienceLevel:  ExperienceBeginner,
		WorkoutFrequency: 3,
		WorkoutDuration:  60,
		MealFrequency:    3,
		MotivationLevel:  5,
	}
}

// SetPerformance is a single recorded set.
type SetPerformance struct {
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Duration  int     `json:"duration"`
	RestTime  int     `json:"restTime"`
	RPE       int     `json:"rpe"`
	Completed bool    `json:"completed"`
	Notes     string  `json:"notes,omitempty"`
}

// SessionFeedback is the subjective rating attached to a history entry.
type SessionFeedback struct {
	Enjoyment     *int   `json:"enjoyment,omitempty"`
	Difficulty    *int   `json:"difficulty,omitempty"`
	Effectiveness *int   `json:"effectiveness,omitempty"`
	Comments      string `json:"comments,omitempty"`
	WouldRepeat   *bool  `json:"wouldRepeat,omitempty"`
}

// Improvements records objective progress markers for an entry.
type Improvements struct {
	PersonalRecord bool    `json:"personalRecord"`
	VolumeIncrease float64 `json:"volumeIncrease"`
	StrengthGain   float64 `json:"strengthGain"`
}

// HistoryEntry is one exercise performance in one workout session. Entries are
// append-only; the analyzer treats them as the source of truth for trends.
type HistoryEntry struct {
	ID               int64            `json:"id"`
	ExerciseID       string           `json:"exerciseId"`
	ExerciseCategory string           `json:"exerciseCategory"`
	PrimaryMuscles   []string         `json:"primaryMuscles,omitempty"`
	PlanID           string           `json:"planId,omitempty"`
	SessionID        string           `json:"sessionId,omitempty"`
	PerformedAt      time.Time        `json:"performedAt"`
	Sets             []SetPerformance `json:"sets"`
	TotalVolume      float64          `json:"totalVolume"`
	MaxWeight        float64          `json:"maxWeight"`
	MaxReps          int              `json:"maxReps"`
	AverageRPE       float64          `json:"averageRPE"`
	Form             string           `json:"form,omitempty"`
	Pain             string           `json:"pain,omitempty"`
	Feedback         SessionFeedback  `json:"feedback"`
	Improvements     Improvements     `json:"improvements"`
	Recommendations  []string         `json:"nextSessionRecommendations,omitempty"`
}

// maxSetWeight returns the heaviest set in the entry.
func (e HistoryEntry) maxSetWeight() float64 {
	maxWeight := e.MaxWeight
	for _, s := range e.Sets {
		if s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}
	return maxWeight
}

// totalDurationMinutes sums the set durations, in minutes.
func (e HistoryEntry) totalDurationMinutes() float64 {
	var seconds int
	for _, s := range e.Sets {
		seconds += s.Duration
	}
	return float64(seconds) / 60
}

// ExercisePreference is a frequently performed exercise with its mean
// enjoyment rating.
type ExercisePreference struct {
	ExerciseID string  `json:"exerciseId"`
	Frequency  int     `json:"frequency"`
	AvgRating  float64 `json:"avgRating"`
}

// AvoidedExercise is an exercise the user disliked or got hurt by.
type AvoidedExercise struct {
	ExerciseID    string    `json:"exerciseId"`
	Reason        string    `json:"reason"`
	LastAttempted time.Time `json:"lastAttempted"`
}

// Analysis is the Fitness Analyzer output. Every field has a defined value
// even for empty inputs.
type Analysis struct {
	ExperienceLevel    string               `json:"experienceLevel"`
	StrengthLevel      string               `json:"strengthLevel"`
	EnduranceLevel     string               `json:"enduranceLevel"`
	Consistency        float64              `json:"consistency"`
	ProgressionRate    float64              `json:"progressionRate"`
	PreferredExercises []ExercisePreference `json:"preferredExercises"`
	AvoidedExercises   []AvoidedExercise    `json:"avoidedExercises"`
	InjuryRisk         float64              `json:"injuryRisk"`
	RecoveryHours      int                  `json:"recoveryHours"`
	MotivationLevel    int                  `json:"motivationLevel"`
}

// PlannedExercise is one configured exercise in a workout day.
type PlannedExercise struct {
	ExerciseID    int64    `json:"exerciseId"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	TargetMuscles []string `json:"targetMuscles"`
	Sets          int      `json:"sets"`
	Reps          int      `json:"reps"`
	Weight        int      `json:"weight"`
	RestSeconds   int      `json:"restSeconds"`
}

// WorkoutDay is one scheduled training day in the plan.
type WorkoutDay struct {
	Week            int               `json:"week"`
	Day             int               `json:"day"`
	Focus           string            `json:"focus"`
	Exercises       []PlannedExercise `json:"exercises"`
	DurationSeconds int               `json:"durationSeconds"`
}

// Plan is the synthesized multi-week schedule.
type Plan struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	DurationWeeks   int          `json:"durationWeeks"`
	DaysPerWeek     int          `json:"daysPerWeek"`
	RestDays        int          `json:"restDays"`
	Difficulty      int          `json:"difficulty"`
	Days            []WorkoutDay `json:"days"`
	DurationSeconds int          `json:"durationSeconds"`
}

// Factor is one personalization factor weight recorded with a plan.
type Factor struct {
	Name    string  `json:"factor"`
	Weight  float64 `json:"weight"`
	Applied bool    `json:"applied"`
}

// Predictions is the expected-outcome metadata persisted with a plan.
type Predictions struct {
	ExpectedDifficulty      float64 `json:"expectedDifficulty"`
	ExpectedDurationMinutes int     `json:"expectedDurationMinutes"`
	ExpectedCalories        int     `json:"expectedCalories"`
	SuccessProbability      float64 `json:"successProbability"`
}

// PlanFeedback is the user's post-hoc rating of a generated plan.
type PlanFeedback struct {
	Rating            int       `json:"rating"`
	CompletedWorkouts int       `json:"completedWorkouts"`
	Effectiveness     int       `json:"effectiveness,omitempty"`
	Comments          string    `json:"comments,omitempty"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// GeneratedPlan is the persisted AI workout plan record.
type GeneratedPlan struct {
	ID               string        `json:"id"`
	UserID           int64         `json:"userId"`
	Version          int           `json:"version"`
	GenerationReason string        `json:"generationReason"`
	Plan             Plan          `json:"plan"`
	Factors          []Factor      `json:"factors"`
	Predictions      Predictions   `json:"predictions"`
	Confidence       float64       `json:"confidence"`
	Recommendations  []string      `json:"recommendations"`
	Feedback         *PlanFeedback `json:"feedback,omitempty"`
	IsActive         bool          `json:"isActive"`
	CreatedAt        time.Time     `json:"createdAt"`
	ExpiresAt        time.Time     `json:"expiresAt"`
}

// Constraints carries the caller-specified plan shape.
type Constraints struct {
	DurationWeeks  int `json:"duration"`
	TimePerSession int `json:"timePerSession"`
}
