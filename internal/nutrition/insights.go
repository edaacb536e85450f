package nutrition

import (
	"math"
)

const trendThreshold = 0.05

// buildInsights summarizes the period's logs: averages, logging consistency
// and a half-over-half trend per tracked value. Logs arrive newest first.
func buildInsights(profile Profile, logs []LogEntry, period string, windowDays int) Insights {
	insights := Insights{
		Period:       period,
		DaysLogged:   len(logs),
		CalorieTrend: "stable",
		ProteinTrend: "stable",
	}
	if len(logs) == 0 {
		insights.Recommendations = recommendations(profile, nil)
		return insights
	}

	var calories, protein, carbs, fat float64
	for _, l := range logs {
		calories += l.Calories
		protein += l.Protein
		carbs += l.Carbs
		fat += l.Fat
	}
	n := float64(len(logs))
	insights.AvgCalories = math.Round(calories/n*10) / 10
	insights.AvgProtein = math.Round(protein/n*10) / 10
	insights.AvgCarbs = math.Round(carbs/n*10) / 10
	insights.AvgFat = math.Round(fat/n*10) / 10
	insights.Consistency = math.Min(1, n/float64(windowDays))

	insights.CalorieTrend = trend(logs, func(l LogEntry) float64 { return l.Calories })
	insights.ProteinTrend = trend(logs, func(l LogEntry) float64 { return l.Protein })
	insights.Recommendations = recommendations(profile, logs)
	return insights
}

// trend compares the newer half of the logs against the older half; moves
// beyond ±5% count as a real change.
func trend(logs []LogEntry, value func(LogEntry) float64) string {
	if len(logs) < 2 {
		return "stable"
	}
	half := len(logs) / 2
	newer := mean(logs[:half], value)
	older := mean(logs[half:], value)
	if older == 0 {
		return "stable"
	}
	change := (newer - older) / older
	switch {
	case change > trendThreshold:
		return "increasing"
	case change < -trendThreshold:
		return "decreasing"
	default:
		return "stable"
	}
}

func mean(logs []LogEntry, value func(LogEntry) float64) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum float64
	for _, l := range logs {
		sum += value(l)
	}
	return sum / float64(len(logs))
}
