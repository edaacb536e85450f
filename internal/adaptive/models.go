// Package adaptive maintains the standing per-user learning record that
// accumulates across tracked workouts. Updates always merge into the existing
// record; nothing is replaced wholesale and the record never expires.
package adaptive

import "time"

// defaultLearningRate dampens moving-average updates to the scores.
const defaultLearningRate = 0.1

// FavoriteExercise is a frequently performed exercise with its running stats.
type FavoriteExercise struct {
	ExerciseID    string    `json:"exerciseId"`
	Frequency     int       `json:"frequency"`
	AvgRating     float64   `json:"avgRating"`
	LastPerformed time.Time `json:"lastPerformed"`
}

// AvoidedExercise is an exercise the user should steer around, with a
// suggested substitute from the same category.
type AvoidedExercise struct {
	ExerciseID  string    `json:"exerciseId"`
	Reason      string    `json:"reason"`
	Alternative string    `json:"alternative,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// CategoryScore tracks how much the user likes a category and how well they
// perform in it. Both scores are 0-10 moving averages.
type CategoryScore struct {
	Preference  float64 `json:"preference"`
	Proficiency float64 `json:"proficiency"`
	Sessions    int     `json:"sessions"`
}

// ExercisePerformance groups the exercise-level learning state.
type ExercisePerformance struct {
	Favorites  []FavoriteExercise       `json:"favorites"`
	Avoided    []AvoidedExercise        `json:"avoided"`
	Categories map[string]CategoryScore `json:"categories"`
}

// WorkoutPatterns holds schedule and progression statistics.
type WorkoutPatterns struct {
	PreferredDays      map[string]int `json:"preferredDays"`
	AvgDurationMinutes float64        `json:"avgDurationMinutes"`
	Consistency        float64        `json:"consistency"`
	ProgressionRate    float64        `json:"progressionRate"`
	SessionsTracked    int            `json:"sessionsTracked"`
	// MealTimingConsistency and MacroTolerance come from nutrition
	// tracking events rather than workouts.
	MealTimingConsistency float64 `json:"mealTimingConsistency"`
	MacroTolerance        float64 `json:"macroTolerance"`
	NutritionDaysTracked  int     `json:"nutritionDaysTracked"`
}

// GainRecord is one observed strength or endurance improvement.
type GainRecord struct {
	ExerciseID string    `json:"exerciseId"`
	Amount     float64   `json:"amount"`
	RecordedAt time.Time `json:"recordedAt"`
}

// PlateauRecord marks a stretch of stalled progression. Resolved stays false
// until progression recovers.
type PlateauRecord struct {
	DetectedAt time.Time `json:"detectedAt"`
	Resolved   bool      `json:"resolved"`
	ResolvedAt time.Time `json:"resolvedAt,omitzero"`
}

// InjuryRecord is a severe-pain report from a tracked session.
type InjuryRecord struct {
	ExerciseID string    `json:"exerciseId"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ProgressMetrics groups the longitudinal performance insights.
type ProgressMetrics struct {
	StrengthGains  []GainRecord    `json:"strengthGains"`
	EnduranceGains []GainRecord    `json:"enduranceGains"`
	Plateaus       []PlateauRecord `json:"plateaus"`
	Injuries       []InjuryRecord  `json:"injuries"`
	LastAnalysis   time.Time       `json:"lastAnalysis,omitzero"`
}

// Recommendation is the current next-session snapshot.
type Recommendation struct {
	NextWorkoutType string   `json:"nextWorkoutType"`
	FocusAreas      []string `json:"focusAreas,omitempty"`
	AvoidAreas      []string `json:"avoidAreas,omitempty"`
	Intensity       string   `json:"intensity"`
	DurationMinutes int      `json:"durationMinutes"`
	Exercises       []string `json:"exercises,omitempty"`
}

// Record is the one-per-user adaptive learning profile.
type Record struct {
	UserID          int64               `json:"userId"`
	Performance     ExercisePerformance `json:"performance"`
	Patterns        WorkoutPatterns     `json:"patterns"`
	Progress        ProgressMetrics     `json:"progress"`
	Recommendation  Recommendation      `json:"recommendation"`
	LearningRate    float64             `json:"learningRate"`
	ModelConfidence float64             `json:"modelConfidence"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// newRecord is the starting profile for a user with no tracked sessions.
func newRecord(userID int64) Record {
	return Record{
		UserID: userID,
		Performance: ExercisePerformance{
			Categories: make(map[string]CategoryScore),
		},
		Patterns: WorkoutPatterns{
			PreferredDays: make(map[string]int),
		},
		LearningRate:    defaultLearningRate,
		ModelConfidence: baseConfidence,
	}
}
