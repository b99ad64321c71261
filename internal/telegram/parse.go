package telegram

import (
	"regexp"
	"strconv"
	"strings"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/itinerary"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	daysRe         = regexp.MustCompile(`(?i)\b(\d{1,2})[ -]?days?\b`)
	budgetWordRe   = regexp.MustCompile(`(?i)\bbudget\s*(?:of\s*)?(?:₹|rs\.?\s?|inr\s?)?(\d[\d,]*)`)
	budgetSymbolRe = regexp.MustCompile(`(?i)(?:₹|rs\.?\s?|inr\s?)(\d[\d,]*)`)
	destinationRe  = regexp.MustCompile(`(?i)\b(?:to|in|around|visit(?:ing)?)\s+([a-z][a-z ,.'-]+)`)
)

// interestKeywords maps words users actually type to the interest labels the
// prompt builder expects.
var interestKeywords = []struct {
	word     string
	interest string
}{
	{"food", "Local Cuisine"},
	{"cuisine", "Local Cuisine"},
	{"eat", "Local Cuisine"},
	{"history", "Historical Sites"},
	{"historical", "Historical Sites"},
	{"heritage", "Historical Sites"},
	{"museum", "Museums"},
	{"art", "Museums"},
	{"nature", "Nature & Parks"},
	{"park", "Nature & Parks"},
	{"trek", "Adventure"},
	{"adventure", "Adventure"},
	{"shopping", "Shopping"},
	{"market", "Shopping"},
	{"nightlife", "Nightlife"},
}

// parseTripRequest turns a free-text message into a generation request,
// filling anything not mentioned from the configured defaults. It is
// deliberately lenient: a bare destination is enough.
func parseTripRequest(text string, cfg *config.Config) itinerary.GenerationRequest {
	req := itinerary.GenerationRequest{
		Duration:    cfg.DefaultTripDays,
		DailyBudget: cfg.DefaultDailyBudget,
		Pace:        itinerary.PaceModerate,
	}

	if m := daysRe.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil && days > 0 {
			req.Duration = days
		}
	}

	m := budgetWordRe.FindStringSubmatch(text)
	if m == nil {
		m = budgetSymbolRe.FindStringSubmatch(text)
	}
	if m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if budget, err := strconv.ParseFloat(raw, 64); err == nil && budget > 0 {
			req.DailyBudget = budget
		}
	}

	if m := destinationRe.FindStringSubmatch(text); m != nil {
		req.Destination = cleanDestination(m[1])
	}

	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "relaxed") || strings.Contains(lower, "chill") || strings.Contains(lower, "slow"):
		req.Pace = itinerary.PaceRelaxed
	case strings.Contains(lower, "packed") || strings.Contains(lower, "fast") || strings.Contains(lower, "busy"):
		req.Pace = itinerary.PaceFast
	}

	if strings.Contains(lower, "no nightlife") || strings.Contains(lower, "skip nightlife") || strings.Contains(lower, "early night") {
		req.SkipNightlife = true
	}

	seen := make(map[string]bool)
	for _, kw := range interestKeywords {
		if kw.interest == "Nightlife" && req.SkipNightlife {
			continue
		}
		if strings.Contains(lower, kw.word) && !seen[kw.interest] {
			seen[kw.interest] = true
			req.Interests = append(req.Interests, kw.interest)
		}
	}
	if len(req.Interests) == 0 {
		req.Interests = cfg.DefaultInterests
	}

	return req
}

// cleanDestination trims the captured phrase at the first word that clearly
// belongs to the rest of the sentence.
func cleanDestination(raw string) string {
	raw = strings.TrimSpace(raw)

	// "to go to Jaipur" captures from the first "to"; peel filler words.
	lowerRaw := strings.ToLower(raw)
	for _, prefix := range []string{"go to ", "go ", "travel to ", "visit ", "the "} {
		if strings.HasPrefix(lowerRaw, prefix) {
			raw = raw[len(prefix):]
			lowerRaw = lowerRaw[len(prefix):]
		}
	}

	stopWords := []string{" for ", " with ", " on ", " budget", " under", " around ", " and ", " love", " like", " next "}
	lower := strings.ToLower(raw)
	cut := len(raw)
	for _, sw := range stopWords {
		if idx := strings.Index(lower, sw); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	raw = raw[:cut]

	raw = strings.Trim(raw, " ,.!?")
	return cases.Title(language.English).String(raw)
}
