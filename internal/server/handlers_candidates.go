package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-pipeline/internal/pipeline"
	"github.com/jonathan/talent-pipeline/internal/scoring"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// candidateID parses the {id} path value, writing a 400 on failure
func (s *Server) candidateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return uuid.Nil, false
	}
	return id, true
}

// loadCandidate fetches a candidate, writing the error response itself
// when the candidate cannot be served
func (s *Server) loadCandidate(w http.ResponseWriter, r *http.Request) (*types.Candidate, bool) {
	id, ok := s.candidateID(w, r)
	if !ok {
		return nil, false
	}
	c, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if c == nil {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return nil, false
	}
	return c, true
}

// actorOr returns the request actor or the server default
func (s *Server) actorOr(actor string) string {
	if actor == "" {
		return s.actor
	}
	return actor
}

// handleCreateCandidate registers a candidate at sourcing intake
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	c := types.NewCandidate(req.Name, req.OpportunityID, time.Now().UTC())
	c.Email = req.Email
	c.Phone = req.Phone

	if err := s.store.SaveCandidate(r.Context(), c); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, c)
}

// handleListCandidates lists an opportunity's candidates ranked by
// stage priority descending, ties broken by deployability score
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := uuid.Parse(r.URL.Query().Get("opportunity_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "opportunity_id query parameter is required")
		return
	}

	candidates, err := s.store.ListCandidates(r.Context(), opportunityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := pipeline.StagePriority(candidates[i].State), pipeline.StagePriority(candidates[j].State)
		if pi != pj {
			return pi > pj
		}
		return scoring.Aggregate(candidates[i]).Deployability > scoring.Aggregate(candidates[j]).Deployability
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// handleGetCandidate retrieves a candidate by ID
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

// handleTransition applies a stage change
func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	target, err := pipeline.ParseStage(req.Target)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	updated, err := pipeline.Transition(c, target, s.actorOr(req.Actor), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleContactStatus updates the outreach sub-state
func (s *Server) handleContactStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.ContactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated, err := pipeline.SetContactStatus(c, types.ContactStatus(req.Status), s.actorOr(req.Actor), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleUnfit marks the candidate preferences-unfit with a required reason
func (s *Server) handleUnfit(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated, err := pipeline.MarkPreferencesUnfit(c, req.Reason, s.actorOr(req.Actor), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleArchive moves the candidate to the archived side channel
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated, err := pipeline.Archive(c, req.Reason, s.actorOr(req.Actor), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleMilestone fires one of the milestone events that are not tied
// to a stage transition
func (s *Server) handleMilestone(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.MilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated, err := pipeline.MarkMilestone(c, req.Milestone, s.actorOr(req.Actor), time.Now().UTC())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleFlags toggles candidate flags
func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.FlagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AwaitingRecommendation == nil && req.IsPotentialPrincipal == nil {
		s.errorResponse(w, http.StatusBadRequest, "No flags supplied")
		return
	}

	actor := s.actorOr(req.Actor)
	now := time.Now().UTC()
	updated := c
	if req.AwaitingRecommendation != nil {
		updated = pipeline.SetAwaitingRecommendation(updated, *req.AwaitingRecommendation, actor, now)
	}
	if req.IsPotentialPrincipal != nil {
		updated = pipeline.SetPotentialPrincipal(updated, *req.IsPotentialPrincipal, actor, now)
	}

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleProfileChange appends an entry to the candidate's change log
func (s *Server) handleProfileChange(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	var req types.ProfileChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	updated := pipeline.RecordProfileChange(c, req.Type, req.Details, s.actorOr(req.Actor), time.Now().UTC())

	if err := s.store.SaveCandidate(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleTimeline returns the candidate's derived activity timeline
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}

	events := pipeline.ProjectTimeline(c)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// handleScores returns the aggregated deployability score set
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCandidate(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, scoring.Aggregate(c))
}
