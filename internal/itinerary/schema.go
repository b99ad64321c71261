package itinerary

import (
	"github.com/google/generative-ai-go/genai"
)

// Exactly one of the two schema shapes below is passed with every generation
// call: the full multi-day itinerary, or a one-element array holding a single
// replacement activity.

func activityItemSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":          {Type: genai.TypeString},
			"description":   {Type: genai.TypeString},
			"estimatedCost": {Type: genai.TypeNumber},
			"transportation": {
				Type:        genai.TypeString,
				Description: "Mode of transport and approximate cost/fare. E.g., 'Metro Yellow Line, ₹40' or 'Bus 721, ₹15'",
			},
			"latitude": {
				Type:        genai.TypeNumber,
				Description: "REQUIRED: Latitude coordinate for the activity location.",
			},
			"longitude": {
				Type:        genai.TypeNumber,
				Description: "REQUIRED: Longitude coordinate for the activity location.",
			},
		},
		Required: []string{"time", "description", "estimatedCost", "latitude", "longitude"},
	}
}

// FullSchema describes the complete multi-day itinerary response: an array
// of day objects.
func FullSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"day":   {Type: genai.TypeInteger},
				"theme": {Type: genai.TypeString},
				"activities": {
					Type:  genai.TypeArray,
					Items: activityItemSchema(),
				},
				"dailyBudgetSummary": {Type: genai.TypeNumber},
				"accommodationSuggestion": {
					Type:        genai.TypeString,
					Description: "Suggestion for a budget hostel or budget-friendly area for the night.",
				},
			},
			Required: []string{"day", "theme", "activities", "dailyBudgetSummary"},
		},
	}
}

// ActivitySchema describes a single replacement activity, requested as a
// one-element array.
func ActivitySchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: activityItemSchema(),
	}
}
