package itinerary

import (
	"math"
	"strings"

	"github.com/samber/lo"
)

// SustainabilityScore rates public-transport and walking usage from 1 to 5.
//
// This is a documented heuristic, not a verified measurement: any activity
// whose transportation text contains "metro", "bus" or "walk" counts as
// green, so "bus stop nearby, but taxi used" false-positives. When no
// activity mentions transportation at all the neutral default 3 is returned,
// since absence of data is not poor sustainability.
func SustainabilityScore(it Itinerary) int {
	green := 0
	mentioned := 0

	for _, day := range it {
		for _, act := range day.Activities {
			transport := strings.ToLower(act.Transportation)
			if transport == "" {
				continue
			}
			mentioned++
			if strings.Contains(transport, "metro") || strings.Contains(transport, "bus") || strings.Contains(transport, "walk") {
				green++
			}
		}
	}

	if mentioned == 0 {
		return 3
	}

	score := int(math.Round(float64(green) / float64(mentioned) * 5))
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// TotalCost sums the per-day budget summaries. An empty itinerary costs 0.
func TotalCost(it Itinerary) float64 {
	return lo.SumBy(it, func(d Day) float64 { return d.DailyBudgetSummary })
}

// AverageDailyCost divides the total cost over the day count, or 0 for an
// empty trip.
func AverageDailyCost(totalCost float64, dayCount int) float64 {
	if dayCount == 0 {
		return 0
	}
	return totalCost / float64(dayCount)
}

// HighestCostSlot returns the day and activity indexes of the most expensive
// activity. Ties are broken by first encountered in day-then-activity order.
// ok is false when the itinerary holds no activities.
func (it Itinerary) HighestCostSlot() (dayIndex, activityIndex int, ok bool) {
	best := -1.0
	for d, day := range it {
		for a, act := range day.Activities {
			if act.EstimatedCost > best {
				best = act.EstimatedCost
				dayIndex, activityIndex, ok = d, a, true
			}
		}
	}
	return dayIndex, activityIndex, ok
}
