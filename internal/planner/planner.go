package planner

import (
	"context"
	"log"
	"time"

	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/llm"
	"ai-travel-planner/internal/session"
	"ai-travel-planner/internal/shared"
)

const (
	agentItinerary = "Itinerary"
	agentRefiner   = "Refiner"
)

// BriefProvider supplies a short destination brief used to ground the
// generation prompt. Failures are tolerated; generation proceeds without it.
type BriefProvider interface {
	Brief(ctx context.Context, destination string) (string, error)
}

// Service orchestrates itinerary generation and refinement. One Service is
// shared by all fronts; per-session serialization happens on the session
// itself.
type Service struct {
	gen   llm.StructuredGenerator
	guide BriefProvider
	demo  bool
}

// NewService creates a planner. A nil generator (or demo=true) puts the
// service in demo mode: every generation serves the canned itinerary without
// any outbound call, and refinement is unavailable. guide may be nil.
func NewService(gen llm.StructuredGenerator, guide BriefProvider, demo bool) *Service {
	return &Service{
		gen:   gen,
		guide: guide,
		demo:  demo || gen == nil,
	}
}

// DemoMode reports whether the service only serves canned content.
func (s *Service) DemoMode() bool {
	return s.demo
}

// GenerateResult is the outcome of a full generation. Fallback generations
// still carry a complete, renderable itinerary.
type GenerateResult struct {
	Itinerary itinerary.Itinerary
	TotalCost float64
	Fallback  bool
	Message   string
}

// Generate produces a full itinerary for the request and installs it in the
// session, replacing any previous plan wholesale and recomputing the total
// cost from scratch. Every failure of the generation call is absorbed here:
// the session receives the canned itinerary and the result carries a
// user-visible message instead of an error.
func (s *Service) Generate(ctx context.Context, sess *session.Session, req itinerary.GenerationRequest) (GenerateResult, []shared.AgentMeta) {
	if s.demo {
		return s.installFallback(sess, req.Destination, "Running in demo mode (offline example itinerary for Hyderabad)."), nil
	}

	prompt := BuildItineraryPrompt(req)
	if s.guide != nil {
		if brief, err := s.guide.Brief(ctx, req.Destination); err != nil {
			log.Printf("Warning: destination brief unavailable for %q: %v", req.Destination, err)
		} else if brief != "" {
			prompt += "\n\nBackground on the destination: " + brief
		}
	}

	start := time.Now()
	resp, err := s.gen.GenerateStructured(ctx, prompt, SystemInstruction, itinerary.FullSchema())
	metas := []shared.AgentMeta{shared.Meta(agentItinerary, resp.Usage, start)}

	if err != nil {
		log.Printf("Itinerary generation failed: %v", err)
		return s.installFallback(sess, req.Destination, "Generation service unavailable. Displaying the example itinerary."), metas
	}

	it, err := itinerary.Decode(resp.Content)
	if err != nil {
		log.Printf("Itinerary response rejected: %v", err)
		return s.installFallback(sess, req.Destination, "The service did not return a usable itinerary. Displaying the example itinerary."), metas
	}

	total := itinerary.TotalCost(it)
	// The session keeps its own copy; the result is rendered after the lock
	// is released and must not alias state a later refinement will rewrite.
	_ = sess.WithLock(func() error {
		sess.Destination = req.Destination
		sess.Itinerary = it.Clone()
		sess.TotalCost = total
		return nil
	})

	return GenerateResult{Itinerary: it, TotalCost: total}, metas
}

func (s *Service) installFallback(sess *session.Session, destination, message string) GenerateResult {
	it := DemoItinerary()
	total := itinerary.TotalCost(it)
	_ = sess.WithLock(func() error {
		if destination == "" {
			destination = DemoDestination
		}
		sess.Destination = destination
		sess.Itinerary = it.Clone()
		sess.TotalCost = total
		return nil
	})
	return GenerateResult{Itinerary: it, TotalCost: total, Fallback: true, Message: message}
}
