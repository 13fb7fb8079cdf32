// Package types provides type definitions for structured data used throughout the talent-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateCandidateRequest represents the request to register a candidate at sourcing intake.
type CreateCandidateRequest struct {
	Name          string    `json:"name" validate:"required,min=1"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string    `json:"phone,omitempty"`
	OpportunityID uuid.UUID `json:"opportunity_id" validate:"required"`
}

// TransitionRequest represents a stage-change intent.
type TransitionRequest struct {
	Target string `json:"target" validate:"required"`
	Actor  string `json:"actor,omitempty"`
}

// ContactStatusRequest represents an outreach sub-state change.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Actor  string `json:"actor,omitempty"`
}

// ReasonRequest carries the required reason for unfit and archive operations.
type ReasonRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
	Actor  string `json:"actor,omitempty"`
}

// MilestoneRequest fires a milestone event outside stage transitions.
type MilestoneRequest struct {
	Milestone string `json:"milestone" validate:"required"`
	Actor     string `json:"actor,omitempty"`
}

// FlagsRequest toggles candidate flags. Absent fields are left unchanged.
type FlagsRequest struct {
	AwaitingRecommendation *bool  `json:"awaiting_recommendation,omitempty"`
	IsPotentialPrincipal   *bool  `json:"is_potential_principal,omitempty"`
	Actor                  string `json:"actor,omitempty"`
}

// ProfileChangeRequest appends an entry to the candidate's change log.
type ProfileChangeRequest struct {
	Type    string `json:"type" validate:"required"`
	Details string `json:"details,omitempty"`
	Actor   string `json:"actor,omitempty"`
}

// SnapshotRequest appends one daily stage-count observation to an opportunity's series.
type SnapshotRequest struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Sourcing       int    `json:"sourcing" validate:"min=0"`
	Matching       int    `json:"matching" validate:"min=0"`
	Deployability  int    `json:"deployability" validate:"min=0"`
	Verifications  int    `json:"verifications" validate:"min=0"`
	Recommendation int    `json:"recommendation" validate:"min=0"`
	Putting        int    `json:"putting" validate:"min=0"`
	Deployment     int    `json:"deployment" validate:"min=0"`
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TransitionRequest using the validator.
func (r *TransitionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ContactStatusRequest using the validator.
func (r *ContactStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MilestoneRequest using the validator.
func (r *MilestoneRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReasonRequest using the validator.
func (r *ReasonRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProfileChangeRequest using the validator.
func (r *ProfileChangeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SnapshotRequest using the validator.
func (r *SnapshotRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
