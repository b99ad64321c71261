package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a response body that was not valid JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response as JSON: %v. Response: %s", e.Err, truncate(e.Raw, 300))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports valid JSON that does not match the contracted shape,
// including schema-required fields the service omitted anyway.
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return "unexpected response shape: " + e.Detail
}

// The service is contracted by instruction, not enforcement, to honor the
// requested schema. Responses are therefore decoded into an untrusted
// representation first and every required field is checked explicitly before
// promotion to the typed entities.

type rawActivity struct {
	Time           *string  `json:"time"`
	Description    *string  `json:"description"`
	EstimatedCost  *float64 `json:"estimatedCost"`
	Transportation string   `json:"transportation"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

type rawDay struct {
	Day                     *int          `json:"day"`
	Theme                   *string       `json:"theme"`
	Activities              []rawActivity `json:"activities"`
	DailyBudgetSummary      *float64      `json:"dailyBudgetSummary"`
	AccommodationSuggestion string        `json:"accommodationSuggestion"`
}

// Decode parses a full-itinerary response. The top level must be an array of
// days, or an object wrapping one under an "itinerary" key (a shape the
// service is known to produce occasionally).
func Decode(raw string) (Itinerary, error) {
	data := []byte(strings.TrimSpace(raw))

	var days []rawDay
	if err := json.Unmarshal(data, &days); err != nil {
		if !json.Valid(data) {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		var envelope struct {
			Itinerary []rawDay `json:"itinerary"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Itinerary == nil {
			return nil, &ShapeError{Detail: "top-level value is neither a day array nor an itinerary envelope"}
		}
		days = envelope.Itinerary
	}

	if len(days) == 0 {
		return nil, &ShapeError{Detail: "itinerary contains no days"}
	}

	out := make(Itinerary, 0, len(days))
	for i, d := range days {
		day, err := promoteDay(i, d)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

// DecodeActivity parses a single-activity response: a one-element array
// matching the activity schema. Extra elements are ignored; the first one is
// the replacement.
func DecodeActivity(raw string) (Activity, error) {
	data := []byte(strings.TrimSpace(raw))

	var acts []rawActivity
	if err := json.Unmarshal(data, &acts); err != nil {
		if !json.Valid(data) {
			return Activity{}, &ParseError{Raw: raw, Err: err}
		}
		// Tolerate a bare object response for a single activity.
		var single rawActivity
		if err := json.Unmarshal(data, &single); err != nil {
			return Activity{}, &ShapeError{Detail: "top-level value is neither an activity array nor an activity object"}
		}
		acts = []rawActivity{single}
	}

	if len(acts) == 0 {
		return Activity{}, &ShapeError{Detail: "activity array is empty"}
	}

	return promoteActivity("replacement activity", acts[0])
}

func promoteDay(index int, d rawDay) (Day, error) {
	where := fmt.Sprintf("day at position %d", index)
	if d.Day == nil {
		return Day{}, &ShapeError{Detail: where + ": missing day number"}
	}
	if d.Theme == nil {
		return Day{}, &ShapeError{Detail: where + ": missing theme"}
	}
	if d.Activities == nil {
		return Day{}, &ShapeError{Detail: where + ": missing activities"}
	}
	if d.DailyBudgetSummary == nil {
		return Day{}, &ShapeError{Detail: where + ": missing dailyBudgetSummary"}
	}

	day := Day{
		Day:                     *d.Day,
		Theme:                   *d.Theme,
		Activities:              make([]Activity, 0, len(d.Activities)),
		DailyBudgetSummary:      *d.DailyBudgetSummary,
		AccommodationSuggestion: d.AccommodationSuggestion,
	}

	for j, a := range d.Activities {
		act, err := promoteActivity(fmt.Sprintf("%s, activity %d", where, j), a)
		if err != nil {
			return Day{}, err
		}
		day.Activities = append(day.Activities, act)
	}
	return day, nil
}

func promoteActivity(where string, a rawActivity) (Activity, error) {
	if a.Time == nil {
		return Activity{}, &ShapeError{Detail: where + ": missing time"}
	}
	if a.Description == nil {
		return Activity{}, &ShapeError{Detail: where + ": missing description"}
	}
	if a.EstimatedCost == nil {
		return Activity{}, &ShapeError{Detail: where + ": missing estimatedCost"}
	}
	if a.Latitude == nil || a.Longitude == nil {
		return Activity{}, &ShapeError{Detail: where + ": missing coordinates"}
	}
	if *a.EstimatedCost < 0 {
		return Activity{}, &ShapeError{Detail: where + ": negative estimatedCost"}
	}

	return Activity{
		Time:           *a.Time,
		Description:    *a.Description,
		EstimatedCost:  *a.EstimatedCost,
		Transportation: a.Transportation,
		Latitude:       *a.Latitude,
		Longitude:      *a.Longitude,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
