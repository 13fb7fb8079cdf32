package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-pipeline/internal/momentum"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// handleAppendSnapshot appends one daily stage-count observation to an
// opportunity's series
func (s *Server) handleAppendSnapshot(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	var req types.SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	point := &types.TimelinePipelineDataPoint{
		OpportunityID:  opportunityID,
		Date:           date,
		Sourcing:       req.Sourcing,
		Matching:       req.Matching,
		Deployability:  req.Deployability,
		Verifications:  req.Verifications,
		Recommendation: req.Recommendation,
		Putting:        req.Putting,
		Deployment:     req.Deployment,
	}

	if err := s.store.AppendSnapshot(r.Context(), point); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, point)
}

// handleMomentum computes the momentum report for an opportunity
func (s *Server) handleMomentum(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	series, err := s.store.ListSnapshots(r.Context(), opportunityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, momentum.Compute(series))
}
