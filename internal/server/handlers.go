package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"ai-travel-planner/internal/itinerary"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"
	"ai-travel-planner/internal/shared"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	Destination string `json:"destination"`
}

type sessionResponse struct {
	ID                  string              `json:"id"`
	Destination         string              `json:"destination"`
	Demo                bool                `json:"demo"`
	Itinerary           itinerary.Itinerary `json:"itinerary"`
	TotalCost           float64             `json:"totalCost"`
	SustainabilityScore int                 `json:"sustainabilityScore"`
	AverageDailyCost    float64             `json:"averageDailyCost"`
	Message             string              `json:"message,omitempty"`
	Fallback            bool                `json:"fallback,omitempty"`
}

type swapRequest struct {
	Day      int `json:"day"`
	Activity int `json:"activity"`
}

type refineResponse struct {
	DayIndex      int                `json:"dayIndex"`
	ActivityIndex int                `json:"activityIndex"`
	Day           itinerary.Day      `json:"day"`
	NewActivity   itinerary.Activity `json:"newActivity"`
	TotalCost     float64            `json:"totalCost"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "demo": s.planner.DemoMode()})
}

func (s *Server) createSession(c *gin.Context) {
	// An empty body is fine: the destination then defaults.
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Destination == "" {
		req.Destination = planner.DemoDestination
	}

	sess := s.sessions.Create(req.Destination, s.planner.DemoMode())
	c.JSON(http.StatusCreated, s.sessionView(sess, "", false))
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	c.JSON(http.StatusOK, s.sessionView(sess, "", false))
}

func (s *Server) generateItinerary(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	var req itinerary.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Validation of user input lives here, at the UI boundary.
	if req.Destination == "" {
		_ = sess.WithLock(func() error {
			req.Destination = sess.Destination
			return nil
		})
	}
	if req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}
	if req.Duration <= 0 {
		req.Duration = s.cfg.DefaultTripDays
	}
	if req.DailyBudget <= 0 {
		req.DailyBudget = s.cfg.DefaultDailyBudget
	}
	if len(req.Interests) == 0 {
		req.Interests = s.cfg.DefaultInterests
	}
	if req.Pace == "" {
		req.Pace = itinerary.PaceModerate
	}

	result, metas := s.planner.Generate(c.Request.Context(), sess, req)
	s.recordMetas(metas)

	c.JSON(http.StatusOK, s.sessionView(sess, result.Message, result.Fallback))
}

func (s *Server) reduceHighestCost(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	result, metas, err := s.planner.ReduceHighestCost(c.Request.Context(), sess)
	s.recordMetas(metas)
	if err != nil {
		s.refineError(c, err)
		return
	}

	c.JSON(http.StatusOK, refineView(result))
}

func (s *Server) swapActivity(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}

	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, metas, err := s.planner.SwapActivity(c.Request.Context(), sess, req.Day, req.Activity)
	s.recordMetas(metas)
	if err != nil {
		s.refineError(c, err)
		return
	}

	c.JSON(http.StatusOK, refineView(result))
}

func (s *Server) metricsReport(c *gin.Context) {
	if s.metricsStore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metrics are not enabled"})
		return
	}

	usage, err := s.metricsStore.GetDailyUsage(7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dailyUsage": usage,
		"health":     metrics.Health(filepath.Dir(s.cfg.DatabasePath), s.sessions.Count()),
	})
}

// refineError maps refinement failures onto HTTP statuses. Refinement
// failures never corrupt session state, so they are reported inline and the
// session stays usable.
func (s *Server) refineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrDemoMode):
		c.JSON(http.StatusConflict, gin.H{"error": "refinement requires a configured generation service"})
	case errors.Is(err, planner.ErrNoActivities), errors.Is(err, planner.ErrSlotOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Refinement failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to regenerate activity, try a full regeneration"})
	}
}

func (s *Server) sessionView(sess *session.Session, message string, fallback bool) sessionResponse {
	var resp sessionResponse
	_ = sess.WithLock(func() error {
		resp = sessionResponse{
			ID:          sess.ID,
			Destination: sess.Destination,
			Demo:        sess.Demo,
			// Cloned: gin marshals the response after the lock is released,
			// and a concurrent refinement mutates the live slices in place.
			Itinerary:           sess.Itinerary.Clone(),
			TotalCost:           sess.TotalCost,
			SustainabilityScore: itinerary.SustainabilityScore(sess.Itinerary),
			AverageDailyCost:    itinerary.AverageDailyCost(sess.TotalCost, len(sess.Itinerary)),
			Message:             message,
			Fallback:            fallback,
		}
		return nil
	})
	return resp
}

func refineView(result planner.RefineResult) refineResponse {
	return refineResponse{
		DayIndex:      result.DayIndex,
		ActivityIndex: result.ActivityIndex,
		Day:           result.Day,
		NewActivity:   result.NewActivity,
		TotalCost:     result.TotalCost,
	}
}

func (s *Server) recordMetas(metas []shared.AgentMeta) {
	if s.metricsStore == nil {
		return
	}
	if err := s.metricsStore.RecordMetas(metas); err != nil {
		log.Printf("Warning: failed to record generation metrics: %v", err)
	}
}
