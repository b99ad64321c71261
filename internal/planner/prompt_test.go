package planner

import (
	"strings"
	"testing"

	"ai-travel-planner/internal/itinerary"
)

func TestBuildItineraryPrompt(t *testing.T) {
	base := itinerary.GenerationRequest{
		Destination: "Hyderabad, India",
		Duration:    1,
		DailyBudget: 4500,
		Interests:   []string{"Local Cuisine"},
		Pace:        itinerary.PaceModerate,
	}

	t.Run("ContainsCoreFields", func(t *testing.T) {
		prompt := BuildItineraryPrompt(base)

		for _, want := range []string{"1-day", "Hyderabad, India", "4500", "Local Cuisine", "Moderate", "INR"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("Expected prompt to contain %q.\nPrompt: %s", want, prompt)
			}
		}
		if strings.Contains(prompt, "18:00") {
			t.Errorf("Expected no nightlife constraint when SkipNightlife is false.\nPrompt: %s", prompt)
		}
	})

	t.Run("SkipNightlifeAddsConstraint", func(t *testing.T) {
		req := base
		req.SkipNightlife = true
		prompt := BuildItineraryPrompt(req)

		if !strings.Contains(prompt, "concluded by 6:00 PM (18:00)") {
			t.Errorf("Expected the 18:00 constraint phrase.\nPrompt: %s", prompt)
		}
	})

	t.Run("JoinsMultipleInterests", func(t *testing.T) {
		req := base
		req.Interests = []string{"Nature", "Museums", "Shopping"}
		prompt := BuildItineraryPrompt(req)

		if !strings.Contains(prompt, "Nature, Museums, Shopping") {
			t.Errorf("Expected comma-joined interests.\nPrompt: %s", prompt)
		}
	})

	t.Run("NoValidationOfOutOfRangeValues", func(t *testing.T) {
		req := base
		req.Duration = -2
		prompt := BuildItineraryPrompt(req)

		// Validation belongs to the UI boundary; the builder passes the
		// value through untouched.
		if !strings.Contains(prompt, "-2-day") {
			t.Errorf("Expected out-of-range duration to pass through.\nPrompt: %s", prompt)
		}
	})
}

func TestBuildReplacementPrompt(t *testing.T) {
	day := itinerary.Day{
		Day:   2,
		Theme: "Old City Heritage",
		Activities: []itinerary.Activity{
			{Time: "10:00 AM", Description: "Visit Charminar", EstimatedCost: 50},
			{Time: "07:30 PM", Description: "Biryani dinner", EstimatedCost: 350},
		},
		DailyBudgetSummary: 400,
	}

	prompt := BuildReplacementPrompt("Hyderabad, India", day, 1, goalReduceCost)

	for _, want := range []string{
		"Old City Heritage",
		"Hyderabad, India",
		"07:30 PM",
		"Biryani dinner",
		"₹350",
		goalReduceCost,
		"latitude and longitude",
		"single-item JSON array",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected replacement prompt to contain %q.\nPrompt: %s", want, prompt)
		}
	}
}
