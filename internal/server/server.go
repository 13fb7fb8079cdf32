// Package server provides the HTTP REST API for the talent pipeline tracker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-pipeline/internal/agents"
	"github.com/jonathan/talent-pipeline/internal/db"
	"github.com/jonathan/talent-pipeline/internal/server/ratelimit"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// CandidateStore is the candidate repository the handlers depend on.
// *db.DB satisfies it; tests supply an in-memory fake.
type CandidateStore interface {
	SaveCandidate(ctx context.Context, c *types.Candidate) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	ListCandidates(ctx context.Context, opportunityID uuid.UUID) ([]*types.Candidate, error)
}

// SeriesStore is the snapshot series repository
type SeriesStore interface {
	AppendSnapshot(ctx context.Context, p *types.TimelinePipelineDataPoint) error
	ListSnapshots(ctx context.Context, opportunityID uuid.UUID) ([]types.TimelinePipelineDataPoint, error)
}

// AgentResultStore is the agent result bundle repository
type AgentResultStore interface {
	SaveAgentResults(ctx context.Context, candidateID uuid.UUID, stage string, results []types.RawAgentJobResult) error
	GetAgentResults(ctx context.Context, candidateID uuid.UUID, stage string) ([]types.RawAgentJobResult, error)
}

// Store bundles the repositories the server needs
type Store interface {
	CandidateStore
	SeriesStore
	AgentResultStore
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	registry    *agents.Registry
	rateLimiter *ratelimit.Limiter
	actor       string
	demoChecks  bool
	closeDB     func()
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Actor       string
	DemoChecks  bool
}

// New creates a new server instance backed by PostgreSQL
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := NewWithStore(cfg, database, agents.NewRegistry(agents.DefaultTemplates()))
	s.closeDB = database.Close
	return s, nil
}

// NewWithStore creates a server on top of an existing store. Tests use
// this with an in-memory store.
func NewWithStore(cfg Config, store Store, registry *agents.Registry) *Server {
	s := &Server{
		store:       store,
		registry:    registry,
		actor:       cfg.Actor,
		demoChecks:  cfg.DemoChecks,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
	if s.actor == "" {
		s.actor = "system"
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Candidate lifecycle
	mux.HandleFunc("POST /candidates", s.handleCreateCandidate)
	mux.HandleFunc("GET /candidates", s.handleListCandidates)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("POST /candidates/{id}/transition", s.handleTransition)
	mux.HandleFunc("POST /candidates/{id}/contact-status", s.handleContactStatus)
	mux.HandleFunc("POST /candidates/{id}/unfit", s.handleUnfit)
	mux.HandleFunc("POST /candidates/{id}/archive", s.handleArchive)
	mux.HandleFunc("POST /candidates/{id}/milestones", s.handleMilestone)
	mux.HandleFunc("POST /candidates/{id}/flags", s.handleFlags)
	mux.HandleFunc("POST /candidates/{id}/profile-changes", s.handleProfileChange)

	// Read-side projections
	mux.HandleFunc("GET /candidates/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("GET /candidates/{id}/scores", s.handleScores)

	// Agent checks
	mux.HandleFunc("POST /candidates/{id}/agent-results", s.handleIngestAgentResults)
	mux.HandleFunc("GET /candidates/{id}/agent-results", s.handleEvaluateAgentResults)
	mux.HandleFunc("GET /agent-templates", s.handleListTemplates)
	mux.HandleFunc("GET /agent-instances", s.handleListInstances)
	mux.HandleFunc("POST /agent-instances", s.handleInstantiateTemplate)
	mux.HandleFunc("POST /agent-instances/{id}/toggle", s.handleToggleInstance)
	mux.HandleFunc("DELETE /agent-instances/{id}", s.handleRemoveInstance)

	// Momentum analytics
	mux.HandleFunc("POST /opportunities/{id}/snapshots", s.handleAppendSnapshot)
	mux.HandleFunc("GET /opportunities/{id}/momentum", s.handleMomentum)

	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler chain for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response with the given status code
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
