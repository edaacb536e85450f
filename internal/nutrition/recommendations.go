package nutrition

import "fmt"

// recommendations builds the deterministic coaching list from the profile and
// the last week of logged intake. No logs produce tracking advice instead of
// intake advice.
func recommendations(profile Profile, recentLogs []LogEntry) []string {
	var result []string

	if len(recentLogs) == 0 {
		result = append(result,
			"Start logging your meals daily so intake recommendations can be personalised.")
	} else {
		var proteinSum, waterSum float64
		for _, l := range recentLogs {
			proteinSum += l.Protein
			waterSum += l.WaterLiters
		}
		days := float64(len(recentLogs))

		if profile.Body.Weight > 0 {
			perKg := proteinSum / days / profile.Body.Weight
			if perKg < proteinPerKgFloor {
				result = append(result, fmt.Sprintf(
					"Increase protein intake: you average %.1f g/kg of body weight, aim for at least %.1f g/kg.",
					perKg, proteinPerKgFloor))
			}
		}
		if waterSum/days < profile.Targets.WaterLiters {
			result = append(result, fmt.Sprintf(
				"Drink more water: target %.1f litres (about %d glasses) per day.",
				profile.Targets.WaterLiters, profile.Targets.WaterGlasses))
		}
	}

	if profile.Preferences.MealsPerDay > 0 && profile.Preferences.MealsPerDay < defaultMealsPerDay {
		result = append(result,
			"Fewer than three meals a day makes hitting macro targets harder; consider adding a meal or snack.")
	}

	result = append(result, goalTips[profile.Goals.PrimaryGoal]...)
	return result
}
