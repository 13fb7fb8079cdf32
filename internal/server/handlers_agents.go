package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/talent-pipeline/internal/agents"
	"github.com/jonathan/talent-pipeline/internal/schemas"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// handleIngestAgentResults accepts a raw agent result bundle for a
// candidate stage. The bundle is schema-validated before storage;
// invalid bundles are rejected wholesale.
func (s *Server) handleIngestAgentResults(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	stage := r.URL.Query().Get("stage")
	if stage == "" {
		stage = string(c.State)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateAgentResults(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var results []types.RawAgentJobResult
	if err := json.Unmarshal(body, &results); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid agent results payload")
		return
	}

	if err := s.store.SaveAgentResults(r.Context(), c.ID, stage, results); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"candidate_id": c.ID,
		"stage":        stage,
		"count":        len(results),
	})
}

// handleEvaluateAgentResults returns the normalized check evaluation
// for a candidate stage
func (s *Server) handleEvaluateAgentResults(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	stage := r.URL.Query().Get("stage")
	if stage == "" {
		stage = string(c.State)
	}

	existing, err := s.store.GetAgentResults(r.Context(), c.ID, stage)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	checks := s.registry.EnabledChecks(agents.StageLevel)
	checks = append(checks, s.registry.EnabledChecks(agents.CandidateLevel)...)

	var eval agents.Evaluation
	if len(existing) == 0 && s.demoChecks {
		eval = agents.EvaluatePlaceholder(stage, checks)
	} else {
		eval = agents.EvaluateAgentJobs(stage, checks, existing)
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

// handleListTemplates lists the configured check templates
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": agents.DefaultTemplates(),
	})
}

// handleListInstances lists activated check instances with their
// template descriptions resolved best-effort
func (s *Server) handleListInstances(w http.ResponseWriter, _ *http.Request) {
	instances := s.registry.Instances()

	type instanceView struct {
		agents.Instance
		Description string `json:"description,omitempty"`
	}
	views := make([]instanceView, 0, len(instances))
	for _, inst := range instances {
		views = append(views, instanceView{
			Instance:    inst,
			Description: s.registry.Describe(inst.ID),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"instances": views,
		"count":     len(views),
	})
}

// handleInstantiateTemplate activates a check template
func (s *Server) handleInstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TemplateID == "" {
		s.errorResponse(w, http.StatusBadRequest, "template_id is required")
		return
	}

	inst, err := s.registry.Instantiate(req.TemplateID, time.Now().UTC())
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, inst)
}

// handleToggleInstance flips one instance's enabled flag
func (s *Server) handleToggleInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !s.registry.Toggle(r.PathValue("id"), req.Enabled) {
		s.errorResponse(w, http.StatusNotFound, "Instance not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"enabled": req.Enabled})
}

// handleRemoveInstance filters out one instance
func (s *Server) handleRemoveInstance(w http.ResponseWriter, r *http.Request) {
	s.registry.Remove(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
