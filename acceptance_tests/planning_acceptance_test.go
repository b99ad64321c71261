package acceptance_tests

import (
	"context"
	"errors"
	"testing"

	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/llm"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"

	"github.com/google/generative-ai-go/genai"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateCalls int
	failNext      bool
}

func (m *mockLLMClient) GenerateStructured(ctx context.Context, prompt, systemInstruction string, schema *genai.Schema) (llm.ContentResponse, error) {
	m.generateCalls++
	if m.failNext {
		m.failNext = false
		return llm.ContentResponse{}, &llm.ServiceError{Backend: "gemini", Err: errors.New("simulated outage")}
	}

	// Determine if it's a full generation or a replacement request based on
	// the schema root: full itineraries are arrays of day objects.
	if schema != nil && schema.Items != nil {
		if _, isDay := schema.Items.Properties["activities"]; isDay {
			return llm.ContentResponse{Content: `[
				{
					"day": 1,
					"theme": "Forts and Food",
					"activities": [
						{"time": "09:00 AM", "description": "Amber Fort", "estimatedCost": 200, "transportation": "Bus, ₹30", "latitude": 26.9855, "longitude": 75.8513},
						{"time": "01:00 PM", "description": "Thali lunch at LMB", "estimatedCost": 450, "transportation": "Walk", "latitude": 26.9239, "longitude": 75.8267}
					],
					"dailyBudgetSummary": 650,
					"accommodationSuggestion": "Zostel Jaipur, ~₹500/night"
				}
			]`}, nil
		}
	}

	return llm.ContentResponse{Content: `[
		{"time": "01:00 PM", "description": "Street food crawl at Masala Chowk", "estimatedCost": 150, "transportation": "Walk", "latitude": 26.9124, "longitude": 75.8205}
	]`}, nil
}

// TestPlanAndRefineFlow walks the whole user journey: generate a plan, push
// the most expensive activity down, then swap a slot, checking the money
// arithmetic stays consistent throughout.
func TestPlanAndRefineFlow(t *testing.T) {
	ctx := context.Background()
	mock := &mockLLMClient{}

	svc := planner.NewService(mock, nil, false)
	sessions := session.NewStore(0)
	sess := sessions.Create("Jaipur, India", false)

	// 1. Generate
	result, metas := svc.Generate(ctx, sess, itinerary.GenerationRequest{
		Destination: "Jaipur, India",
		Duration:    1,
		DailyBudget: 2000,
		Interests:   []string{"Historical Sites", "Local Cuisine"},
		Pace:        itinerary.PaceModerate,
	})
	if result.Fallback {
		t.Fatalf("Expected a generated plan, got fallback: %s", result.Message)
	}
	if result.TotalCost != 650 {
		t.Fatalf("Expected total 650 after generation, got %v", result.TotalCost)
	}
	if len(metas) != 1 {
		t.Errorf("Expected one agent meta, got %d", len(metas))
	}

	// 2. Reduce highest cost: the ₹450 lunch becomes the ₹150 crawl.
	reduced, _, err := svc.ReduceHighestCost(ctx, sess)
	if err != nil {
		t.Fatalf("ReduceHighestCost failed: %v", err)
	}
	if reduced.DayIndex != 0 || reduced.ActivityIndex != 1 {
		t.Errorf("Expected slot (0,1), got (%d,%d)", reduced.DayIndex, reduced.ActivityIndex)
	}
	if reduced.TotalCost != 350 {
		t.Errorf("Expected total 350 after reduction, got %v", reduced.TotalCost)
	}
	if reduced.Day.DailyBudgetSummary != 350 {
		t.Errorf("Expected day budget 350, got %v", reduced.Day.DailyBudgetSummary)
	}

	// 3. A failing swap leaves everything exactly as it was.
	mock.failNext = true
	_, _, err = svc.SwapActivity(ctx, sess, 0, 0)
	var svcErr *llm.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Expected a ServiceError, got %v", err)
	}
	if sess.TotalCost != 350 {
		t.Errorf("Failed swap must not touch the total, got %v", sess.TotalCost)
	}
	if got := sess.Itinerary[0].Activities[0].Description; got != "Amber Fort" {
		t.Errorf("Failed swap must not touch the slot, got %q", got)
	}

	// 4. A successful swap replaces the slot and updates both budgets.
	swapped, _, err := svc.SwapActivity(ctx, sess, 0, 0)
	if err != nil {
		t.Fatalf("SwapActivity failed: %v", err)
	}
	if swapped.OldActivity.Description != "Amber Fort" {
		t.Errorf("Expected to swap out Amber Fort, got %q", swapped.OldActivity.Description)
	}
	// 350 - 200 + 150
	if swapped.TotalCost != 300 || sess.TotalCost != 300 {
		t.Errorf("Expected total 300 after swap, got result=%v session=%v", swapped.TotalCost, sess.TotalCost)
	}

	if mock.generateCalls != 4 {
		t.Errorf("Expected 4 LLM calls (generate, reduce, failed swap, swap), got %d", mock.generateCalls)
	}
}
