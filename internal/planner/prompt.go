package planner

import (
	"fmt"
	"strings"

	"ai-travel-planner/internal/itinerary"
)

// SystemInstruction steers the generation service for full itineraries.
const SystemInstruction = "You are a world-class, budget-focused student travel agent. " +
	"Your goal is to create practical, optimized itineraries that strictly use public transport, free attractions, and cheap local eats, under the specified daily budget in Indian Rupees (INR). " +
	"For transportation, always provide the specific mode, line, and approximate cost for students. " +
	"***CRITICAL: For EVERY activity, you MUST provide the best possible geographical coordinates (latitude and longitude) for accurate map rendering. Do not use null or zero values.*** " +
	"The final output MUST be a JSON array that strictly adheres to the provided schema, " +
	"using the properties 'estimatedCost' and 'dailyBudgetSummary'."

// replacementSystemInstruction steers the narrower single-activity calls.
const replacementSystemInstruction = "You are a quick-acting travel optimizer. " +
	"Return only a one-item JSON array for a new activity with coordinates."

// Fixed goals for the two refinement entry points.
const (
	goalReduceCost = "suggest a significantly cheaper, similar, student-friendly alternative"
	goalSwap       = "suggest a different attraction/activity nearby with a similar cost"
)

// BuildItineraryPrompt turns the user's preferences into the generation
// instruction. It performs no input validation: out-of-range values pass
// through as-is, since validation belongs to the UI boundary.
func BuildItineraryPrompt(req itinerary.GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate a %d-day student travel itinerary for %s. ", req.Duration, req.Destination)
	fmt.Fprintf(&sb, "Maximum total daily budget: %.0f %s. ", req.DailyBudget, itinerary.CurrencyCode)
	fmt.Fprintf(&sb, "Primary interests: %s. ", strings.Join(req.Interests, ", "))
	fmt.Fprintf(&sb, "Travel pace: %s. ", req.Pace)
	if req.SkipNightlife {
		sb.WriteString("Ensure all activities are concluded by 6:00 PM (18:00). ")
	}
	sb.WriteString("Focus heavily on student-friendly options (cheap eats, free attractions, public transport). ")
	fmt.Fprintf(&sb, "The response must use the currency Indian Rupee (%s) and follow the provided schema strictly.", itinerary.CurrencyCode)

	return sb.String()
}

// BuildReplacementPrompt builds the narrower prompt that asks for a single
// replacement of day.Activities[activityIndex] toward the given goal.
func BuildReplacementPrompt(destination string, day itinerary.Day, activityIndex int, goal string) string {
	old := day.Activities[activityIndex]

	var sb strings.Builder
	fmt.Fprintf(&sb, "In this itinerary for %s in %s, the current activity at %s is: ", day.Theme, destination, old.Time)
	fmt.Fprintf(&sb, "'%s' with a cost of %s. ", old.Description, itinerary.FormatCost(old.EstimatedCost))
	fmt.Fprintf(&sb, "The theme of the day is '%s'. ", day.Theme)
	fmt.Fprintf(&sb, "The user wants to %s. ", goal)
	sb.WriteString("Suggest ONLY the JSON object for the single new activity, replacing the old one. ")
	sb.WriteString("The suggested activity MUST be significantly cheaper or a different attraction/theme. ")
	sb.WriteString("Include accurate latitude and longitude coordinates. ")
	sb.WriteString("Return the output as a single-item JSON array matching the activity schema.")

	return sb.String()
}
