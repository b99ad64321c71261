package itinerary

// CurrencyCode is the currency every cost figure is quoted in.
const CurrencyCode = "INR"

// Pace controls how densely the generated days are packed.
type Pace string

const (
	PaceRelaxed  Pace = "Relaxed"
	PaceModerate Pace = "Moderate"
	PaceFast     Pace = "Fast"
)

// Activity is a single scheduled item within a day. Latitude and longitude
// are required by the generation schema for map rendering, but a malformed
// response can still omit them, so consumers must not assume the schema
// guarantee held unless the value came through Decode.
type Activity struct {
	Time           string  `json:"time"`
	Description    string  `json:"description"`
	EstimatedCost  float64 `json:"estimatedCost"`
	Transportation string  `json:"transportation,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// Day is one day of a trip plan. DailyBudgetSummary tracks the sum of the
// activities' costs; refinements adjust it incrementally rather than
// re-summing.
type Day struct {
	Day                     int        `json:"day"`
	Theme                   string     `json:"theme"`
	Activities              []Activity `json:"activities"`
	DailyBudgetSummary      float64    `json:"dailyBudgetSummary"`
	AccommodationSuggestion string     `json:"accommodationSuggestion,omitempty"`
}

// Itinerary is an ordered multi-day trip plan. Its length equals the trip
// duration.
type Itinerary []Day

// Clone returns a deep copy of the itinerary.
func (it Itinerary) Clone() Itinerary {
	if it == nil {
		return nil
	}
	out := make(Itinerary, len(it))
	for i, day := range it {
		out[i] = day
		out[i].Activities = append([]Activity(nil), day.Activities...)
	}
	return out
}

// GenerationRequest carries the user preferences for one full generation
// call. It is an ephemeral value object, built per call and never persisted.
type GenerationRequest struct {
	Destination   string   `json:"destination"`
	Duration      int      `json:"duration"`
	DailyBudget   float64  `json:"dailyBudget"`
	Interests     []string `json:"interests"`
	Pace          Pace     `json:"pace"`
	SkipNightlife bool     `json:"skipNightlife"`
}
