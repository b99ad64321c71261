package server

import (
	"net/http"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wires the planner core to its browser-facing JSON API.
type Server struct {
	planner      *planner.Service
	sessions     *session.Store
	metricsStore *metrics.Store
	cfg          *config.Config
}

// New creates the API server. metricsStore may be nil; recording is then
// skipped.
func New(plannerSvc *planner.Service, sessions *session.Store, metricsStore *metrics.Store, cfg *config.Config) *Server {
	return &Server{
		planner:      plannerSvc,
		sessions:     sessions,
		metricsStore: metricsStore,
		cfg:          cfg,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.POST("/sessions/:id/itinerary", s.generateItinerary)
		api.POST("/sessions/:id/reduce-highest-cost", s.reduceHighestCost)
		api.POST("/sessions/:id/swap", s.swapActivity)
		api.GET("/metrics", s.metricsReport)
	}

	return r
}
