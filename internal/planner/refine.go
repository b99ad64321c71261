package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/session"
	"ai-travel-planner/internal/shared"
)

var (
	// ErrDemoMode is returned for refinement attempts without a configured
	// generation service.
	ErrDemoMode = errors.New("refinement is not available in demo mode")

	// ErrNoActivities is returned when the session holds no activities to
	// refine.
	ErrNoActivities = errors.New("itinerary has no activities")

	// ErrSlotOutOfRange is returned for a day or activity index outside the
	// current itinerary.
	ErrSlotOutOfRange = errors.New("day or activity index out of range")
)

// RefineResult describes a completed single-activity replacement.
type RefineResult struct {
	DayIndex      int
	ActivityIndex int
	Day           itinerary.Day
	OldActivity   itinerary.Activity
	NewActivity   itinerary.Activity
	TotalCost     float64
}

// ReduceHighestCost finds the most expensive activity across the whole
// itinerary (earliest in day-then-activity order on ties) and replaces it
// with a cheaper alternative.
func (s *Service) ReduceHighestCost(ctx context.Context, sess *session.Session) (RefineResult, []shared.AgentMeta, error) {
	if s.demo {
		return RefineResult{}, nil, ErrDemoMode
	}

	var result RefineResult
	var metas []shared.AgentMeta
	err := sess.WithLock(func() error {
		dayIndex, activityIndex, ok := sess.Itinerary.HighestCostSlot()
		if !ok {
			return ErrNoActivities
		}
		var err error
		result, metas, err = s.replaceLocked(ctx, sess, dayIndex, activityIndex, goalReduceCost)
		return err
	})
	return result, metas, err
}

// SwapActivity replaces the activity at the given slot with a different
// nearby attraction of similar cost.
func (s *Service) SwapActivity(ctx context.Context, sess *session.Session, dayIndex, activityIndex int) (RefineResult, []shared.AgentMeta, error) {
	if s.demo {
		return RefineResult{}, nil, ErrDemoMode
	}

	var result RefineResult
	var metas []shared.AgentMeta
	err := sess.WithLock(func() error {
		var err error
		result, metas, err = s.replaceLocked(ctx, sess, dayIndex, activityIndex, goalSwap)
		return err
	})
	return result, metas, err
}

// replaceLocked performs the shared replacement procedure. The caller must
// hold the session lock. The cost adjustment and the slot overwrite are
// applied only after every fallible step has succeeded, so any failure
// leaves the itinerary exactly as it was.
func (s *Service) replaceLocked(ctx context.Context, sess *session.Session, dayIndex, activityIndex int, goal string) (RefineResult, []shared.AgentMeta, error) {
	if dayIndex < 0 || dayIndex >= len(sess.Itinerary) {
		return RefineResult{}, nil, fmt.Errorf("%w: day %d", ErrSlotOutOfRange, dayIndex)
	}
	day := &sess.Itinerary[dayIndex]
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return RefineResult{}, nil, fmt.Errorf("%w: day %d activity %d", ErrSlotOutOfRange, dayIndex, activityIndex)
	}
	old := day.Activities[activityIndex]

	prompt := BuildReplacementPrompt(sess.Destination, *day, activityIndex, goal)

	start := time.Now()
	resp, err := s.gen.GenerateStructured(ctx, prompt, replacementSystemInstruction, itinerary.ActivitySchema())
	metas := []shared.AgentMeta{shared.Meta(agentRefiner, resp.Usage, start)}
	if err != nil {
		return RefineResult{}, metas, err
	}

	newActivity, err := itinerary.DecodeActivity(resp.Content)
	if err != nil {
		return RefineResult{}, metas, err
	}

	delta := newActivity.EstimatedCost - old.EstimatedCost
	day.DailyBudgetSummary += delta
	day.Activities[activityIndex] = newActivity
	sess.TotalCost += delta

	// The result must be a detached snapshot: callers render it after the
	// session lock is released, while the next refinement may already be
	// rewriting the session's own slices.
	dayView := *day
	dayView.Activities = append([]itinerary.Activity(nil), day.Activities...)

	return RefineResult{
		DayIndex:      dayIndex,
		ActivityIndex: activityIndex,
		Day:           dayView,
		OldActivity:   old,
		NewActivity:   newActivity,
		TotalCost:     sess.TotalCost,
	}, metas, nil
}
