package planner

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/vuna-de/be-exe/internal/catalog"
)

const (
	defaultDurationWeeks = 4
	progressionCap       = 1.5
	weeklyProgression    = 0.10
	dailyProgression     = 0.02
	// secondsPerRep approximates time under load for the duration estimate.
	secondsPerRep = 3
)

// generate synthesizes a multi-week plan from the analysis, preferences and
// the exercise catalog. It never fails: an empty candidate pool just yields a
// shorter (possibly empty) day.
func generate(
	analysis Analysis,
	prefs Preferences,
	goals []string,
	constraints Constraints,
	exercises []catalog.Exercise,
) Plan {
	goal := primaryGoal(goals, prefs)
	weeks := constraints.DurationWeeks
	if weeks <= 0 {
		weeks = defaultDurationWeeks
	}
	frequency := prefs.WorkoutFrequency
	if frequency <= 0 {
		frequency = defaultPreferences().WorkoutFrequency
	}

	plan := Plan{
		Name:          planName(goal),
		Description:   planDescription(goal),
		DurationWeeks: weeks,
		DaysPerWeek:   frequency,
		RestDays:      7 - frequency,
		Difficulty:    ordinal(analysis.ExperienceLevel),
	}

	for week := 1; week <= weeks; week++ {
		for day := 1; day <= frequency; day++ {
			workoutDay := buildDay(analysis, prefs, goal, exercises, week, day)
			plan.DurationSeconds += workoutDay.DurationSeconds
			plan.Days = append(plan.Days, workoutDay)
		}
	}
	return plan
}

func primaryGoal(goals []string, prefs Preferences) string {
	if len(goals) > 0 {
		return goals[0]
	}
	if len(prefs.Goals) > 0 {
		return prefs.Goals[0]
	}
	return "general_fitness"
}

func planName(goal string) string {
	if name, ok := planNames[goal]; ok {
		return name
	}
	return planNames["general_fitness"]
}

func planDescription(goal string) string {
	if description, ok := planDescriptions[goal]; ok {
		return description
	}
	return planDescriptions["general_fitness"]
}

func ordinal(level string) int {
	if o, ok := experienceOrdinal[level]; ok {
		return o
	}
	return experienceOrdinal[ExperienceBeginner]
}

// buildDay picks and configures exercises for one training day.
func buildDay(
	analysis Analysis,
	prefs Preferences,
	goal string,
	exercises []catalog.Exercise,
	week, day int,
) WorkoutDay {
	focus := focusRotation[(day-1)%len(focusRotation)]
	candidates := selectExercises(analysis, prefs, goal, focus, exercises)

	factor := progressionFactor(week, day)
	workoutDay := WorkoutDay{
		Week:  week,
		Day:   day,
		Focus: focus,
	}
	for _, e := range candidates {
		configured := configureExercise(e, analysis.ExperienceLevel, goal, factor)
		workoutDay.DurationSeconds += configured.Sets*configured.Reps*secondsPerRep +
			configured.Sets*configured.RestSeconds
		workoutDay.Exercises = append(workoutDay.Exercises, configured)
	}
	return workoutDay
}

// selectExercises runs the filter chain: equipment, difficulty within one
// step, goal categories, day focus, avoided exclusion, preferred-first sort,
// then sizes the day from the candidate pool.
func selectExercises(
	analysis Analysis,
	prefs Preferences,
	goal, focus string,
	exercises []catalog.Exercise,
) []catalog.Exercise {
	filter := catalog.ExerciseFilter{Equipment: prefs.AvailableEquipment}
	categories := goalCategories[goal]
	userOrdinal := ordinal(analysis.ExperienceLevel)

	avoided := make(map[string]bool, len(analysis.AvoidedExercises))
	for _, a := range analysis.AvoidedExercises {
		avoided[a.ExerciseID] = true
	}
	preferred := make(map[string]bool, len(analysis.PreferredExercises))
	for _, p := range analysis.PreferredExercises {
		preferred[p.ExerciseID] = true
	}

	var candidates []catalog.Exercise
	for _, e := range exercises {
		if !filter.Matches(e) {
			continue
		}
		if diff := ordinal(e.Difficulty) - userOrdinal; diff < -1 || diff > 1 {
			continue
		}
		if categories != nil && !containsString(categories, e.Category) {
			continue
		}
		if !matchesFocus(e, focus) {
			continue
		}
		if avoided[strconv.FormatInt(e.ID, 10)] || avoided[e.Name] {
			continue
		}
		candidates = append(candidates, e)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi := preferred[strconv.FormatInt(candidates[i].ID, 10)] || preferred[candidates[i].Name]
		pj := preferred[strconv.FormatInt(candidates[j].ID, 10)] || preferred[candidates[j].Name]
		return pi && !pj
	})

	take := int(math.Floor(float64(len(candidates)) * exerciseTakeRatio))
	if take < minExercises {
		take = minExercises
	}
	if take > maxExercises {
		take = maxExercises
	}
	if take > len(candidates) {
		take = len(candidates)
	}
	return candidates[:take]
}

func matchesFocus(e catalog.Exercise, focus string) bool {
	if focus == cardioCategory {
		return e.Category == cardioCategory
	}
	muscles := focusMuscles[focus]
	for _, m := range e.PrimaryMuscles {
		if containsString(muscles, m) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// configureExercise derives sets/reps/weight/rest from the level and goal
// tables and applies the progression factor.
func configureExercise(e catalog.Exercise, level, goal string, factor float64) PlannedExercise {
	isCardio := e.Category == cardioCategory
	isStrength := e.Category == "strength"

	sets := setsByLevel[ExperienceBeginner]
	if s, ok := setsByLevel[level]; ok {
		sets = s
	}
	if isStrength && sets+1 <= maxStrengthSets {
		sets++
	}

	reps := defaultReps
	if r, ok := repsByGoal[goal]; ok {
		reps = r
	}
	if isStrength {
		reps -= 2
		if reps < 1 {
			reps = 1
		}
	}

	weight := 0
	if !isCardio && len(e.Equipment) > 0 {
		weight = weightByLevel[ExperienceBeginner]
		if w, ok := weightByLevel[level]; ok {
			weight = w
		}
	}

	rest := restByLevel[ExperienceBeginner]
	if r, ok := restByLevel[level]; ok {
		rest = r
	}

	if isCardio {
		sets, reps, rest = cardioSets, cardioReps, cardioRest
	}

	return PlannedExercise{
		ExerciseID:    e.ID,
		Name:          e.Name,
		Category:      e.Category,
		TargetMuscles: e.PrimaryMuscles,
		Sets:          progressed(sets, factor, 1),
		Reps:          progressed(reps, factor, 1),
		Weight:        progressed(weight, factor, 0),
		RestSeconds:   rest,
	}
}

// progressionFactor grows with week and day but never exceeds the cap, so no
// exercise progresses more than 50% above its base values.
func progressionFactor(week, day int) float64 {
	factor := (1 + float64(week-1)*weeklyProgression) * (1 + float64(day-1)*dailyProgression)
	return math.Min(progressionCap, factor)
}

func progressed(base int, factor float64, minimum int) int {
	value := int(math.Floor(float64(base) * factor))
	if value < minimum {
		return minimum
	}
	return value
}

// planRecommendations returns coaching notes keyed on analysis weaknesses.
func planRecommendations(analysis Analysis) []string {
	var recommendations []string
	if analysis.Consistency < 0.5 {
		recommendations = append(recommendations,
			fmt.Sprintf("Aim for more regular sessions; you trained on %.0f%% of recent days.",
				analysis.Consistency*100))
	}
	if analysis.InjuryRisk > 0.5 {
		recommendations = append(recommendations,
			"Elevated injury risk detected: prioritise warm-ups and strict form over load.")
	}
	if analysis.ProgressionRate < 0.05 {
		recommendations = append(recommendations,
			"Progress has stalled; consider varying intensity or exercise selection.")
	}
	return recommendations
}
