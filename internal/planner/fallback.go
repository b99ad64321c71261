package planner

import (
	"ai-travel-planner/internal/itinerary"
)

// DemoDestination is the destination the canned itinerary covers.
const DemoDestination = "Hyderabad, India"

// DemoItinerary returns the fixed offline example itinerary served when no
// service credential is configured or a generation call fails. It guarantees
// callers always have renderable content. A fresh copy is returned on every
// call so nothing can mutate the canned data.
func DemoItinerary() itinerary.Itinerary {
	return itinerary.Itinerary{
		{
			Day:   1,
			Theme: "Charminar, Old City Heritage & Hyderabadi Cuisine",
			Activities: []itinerary.Activity{
				{
					Time:           "10:00 AM",
					Description:    "Visit Charminar and explore the surrounding Laad Bazaar (Hyderabad's main landmark)",
					EstimatedCost:  50,
					Transportation: "TSRTC Bus from Koti, ₹15",
					Latitude:       17.3616,
					Longitude:      78.4747,
				},
				{
					Time:           "12:30 PM",
					Description:    "Lunch: Famous Irani Chai and Osmania Biscuits at a local cafe near Charminar",
					EstimatedCost:  150,
					Transportation: "Walk",
					Latitude:       17.3630,
					Longitude:      78.4755,
				},
				{
					Time:           "02:30 PM",
					Description:    "Visit the Mecca Masjid (Free entry)",
					EstimatedCost:  0,
					Transportation: "Walk",
					Latitude:       17.3608,
					Longitude:      78.4747,
				},
				{
					Time:           "05:00 PM",
					Description:    "Explore the Telangana State Archaeology Museum (small entry fee)",
					EstimatedCost:  30,
					Transportation: "Metro Red Line (Charminar to Nampally), ₹35",
					Latitude:       17.3917,
					Longitude:      78.4746,
				},
				{
					Time:           "07:30 PM",
					Description:    "Dinner: Affordable Chicken or Veg Biryani at a student-friendly eatery",
					EstimatedCost:  350,
					Transportation: "Metro, ₹40",
					Latitude:       17.4400,
					Longitude:      78.4700,
				},
			},
			DailyBudgetSummary:      620,
			AccommodationSuggestion: "Budget hostel in the Begumpet or Ameerpet area for central metro connectivity.",
		},
	}
}
