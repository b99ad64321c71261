package telegram

import (
	"strings"
	"testing"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultTripDays:    3,
		DefaultDailyBudget: 4500,
		DefaultInterests:   []string{"Local Cuisine", "Historical Sites"},
	}
}

func TestParseTripRequest(t *testing.T) {
	cfg := testConfig()

	t.Run("FullRequest", func(t *testing.T) {
		req := parseTripRequest("3 days in Jaipur, budget ₹3000, love food and history, keep it relaxed", cfg)

		if req.Destination != "Jaipur" {
			t.Errorf("Expected destination Jaipur, got %q", req.Destination)
		}
		if req.Duration != 3 {
			t.Errorf("Expected 3 days, got %d", req.Duration)
		}
		if req.DailyBudget != 3000 {
			t.Errorf("Expected budget 3000, got %v", req.DailyBudget)
		}
		if req.Pace != itinerary.PaceRelaxed {
			t.Errorf("Expected relaxed pace, got %s", req.Pace)
		}

		joined := strings.Join(req.Interests, ",")
		if !strings.Contains(joined, "Local Cuisine") || !strings.Contains(joined, "Historical Sites") {
			t.Errorf("Expected cuisine and history interests, got %v", req.Interests)
		}
	})

	t.Run("DefaultsFillGaps", func(t *testing.T) {
		req := parseTripRequest("Plan a trip to Goa", cfg)

		if req.Destination != "Goa" {
			t.Errorf("Expected destination Goa, got %q", req.Destination)
		}
		if req.Duration != 3 || req.DailyBudget != 4500 {
			t.Errorf("Expected configured defaults, got %d days at %v", req.Duration, req.DailyBudget)
		}
		if req.Pace != itinerary.PaceModerate {
			t.Errorf("Expected moderate pace by default, got %s", req.Pace)
		}
		if len(req.Interests) != 2 {
			t.Errorf("Expected default interests, got %v", req.Interests)
		}
	})

	t.Run("FillerWordsArePeeled", func(t *testing.T) {
		req := parseTripRequest("I want to go to New Delhi for 2 days", cfg)

		if req.Destination != "New Delhi" {
			t.Errorf("Expected New Delhi, got %q", req.Destination)
		}
		if req.Duration != 2 {
			t.Errorf("Expected 2 days, got %d", req.Duration)
		}
	})

	t.Run("HyphenatedDaysAndBareBudget", func(t *testing.T) {
		req := parseTripRequest("5-day trip in Mumbai, budget 2500", cfg)

		if req.Duration != 5 {
			t.Errorf("Expected 5 days, got %d", req.Duration)
		}
		if req.DailyBudget != 2500 {
			t.Errorf("Expected budget 2500, got %v", req.DailyBudget)
		}
	})

	t.Run("SkipNightlifeSuppressesInterest", func(t *testing.T) {
		req := parseTripRequest("2 days in Bengaluru, no nightlife please, some shopping", cfg)

		if !req.SkipNightlife {
			t.Error("Expected SkipNightlife to be set")
		}
		for _, interest := range req.Interests {
			if interest == "Nightlife" {
				t.Error("Nightlife must not appear as an interest when skipped")
			}
		}
		found := false
		for _, interest := range req.Interests {
			if interest == "Shopping" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected Shopping interest, got %v", req.Interests)
		}
	})

	t.Run("FastPaceKeywords", func(t *testing.T) {
		req := parseTripRequest("a packed 1 day in Chennai", cfg)
		if req.Pace != itinerary.PaceFast {
			t.Errorf("Expected fast pace, got %s", req.Pace)
		}
	})

	t.Run("NoDestinationStaysEmpty", func(t *testing.T) {
		req := parseTripRequest("plan something fun", cfg)
		if req.Destination != "" {
			t.Errorf("Expected empty destination, got %q", req.Destination)
		}
	})
}

func TestResolveDestination(t *testing.T) {
	t.Run("ParsedDestinationWins", func(t *testing.T) {
		sess := &session.Session{Destination: "Goa, India"}
		if got := resolveDestination("Jaipur", sess); got != "Jaipur" {
			t.Errorf("Expected Jaipur, got %q", got)
		}
	})

	t.Run("FallsBackToSessionDestination", func(t *testing.T) {
		sess := &session.Session{Destination: "Goa, India"}
		if got := resolveDestination("", sess); got != "Goa, India" {
			t.Errorf("Expected the chat's previous destination, got %q", got)
		}
	})

	t.Run("FreshChatGetsDemoDefault", func(t *testing.T) {
		sess := &session.Session{}
		if got := resolveDestination("", sess); got != planner.DemoDestination {
			t.Errorf("Expected %q, got %q", planner.DemoDestination, got)
		}
	})
}

func TestFormatItineraryMarkdown(t *testing.T) {
	it := itinerary.Itinerary{
		{
			Day:   1,
			Theme: "Old City",
			Activities: []itinerary.Activity{
				{Time: "09:00 AM", Description: "Charminar walk", EstimatedCost: 0, Transportation: "Walk"},
				{Time: "01:00 PM", Description: "Biryani lunch", EstimatedCost: 350, Transportation: "Metro, ₹40"},
			},
			DailyBudgetSummary:      350,
			AccommodationSuggestion: "Hostel near Koti, ~₹600/night",
		},
	}

	out := formatItineraryMarkdown(it, 350)

	if !strings.Contains(out, "*Day 1: Old City*") {
		t.Error("Missing day header")
	}
	if !strings.Contains(out, "1. 09:00 AM — Charminar walk (₹0)") {
		t.Error("Missing first activity line")
	}
	if !strings.Contains(out, "🚌 Metro, ₹40") {
		t.Error("Missing transportation line")
	}
	if !strings.Contains(out, "🛏 _Hostel near Koti, ~₹600/night_") {
		t.Error("Missing accommodation suggestion")
	}
	if !strings.Contains(out, "💰 *Total:* ₹350") {
		t.Error("Missing trip total")
	}
	if !strings.Contains(out, "🌳 *Sustainability:* 5/5") {
		t.Error("Missing sustainability score for all-eco transport")
	}
}
