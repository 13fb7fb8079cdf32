// Package types provides type definitions for structured data used throughout the talent-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Stage represents a candidate's position in the hiring pipeline
type Stage string

// Canonical pipeline stages in progress order, plus the two terminal
// exit states. The legacy "contact" token is not a canonical stage;
// ParseStage migrates it to StageSourced.
const (
	StageSourced           Stage = "sourced"
	StageOnboarded         Stage = "onboarded"
	StagePreferenceMatched Stage = "preferenceMatched"
	StageSpecMatched       Stage = "specMatched"
	StageRecommended       Stage = "recommended"
	StagePreferencesUnfit  Stage = "preferences unfit"
	StageSkillUnfit        Stage = "skill unfit"
)

// ContactStatus is the sub-state of the sourced stage tracking outreach
type ContactStatus string

// Contact statuses, valid only while the candidate is sourced
const (
	ContactNotCalled   ContactStatus = "not_called"
	ContactCalled      ContactStatus = "called"
	ContactNotPicked   ContactStatus = "not_picked"
	ContactInfoMissing ContactStatus = "contact_info_missing"
	ContactNotAFit     ContactStatus = "not_a_fit"
)

// LastAction records the most recent mutation applied to a candidate.
// It is overwritten on every mutation.
type LastAction struct {
	Action string    `json:"action"`
	By     string    `json:"by"`
	Date   time.Time `json:"date"`
}

// ProfileChange is one entry in the candidate's append-only change log
type ProfileChange struct {
	Type    string    `json:"type"`
	Details string    `json:"details"`
	Date    time.Time `json:"date"`
}

// Candidate is the authoritative record for one person moving through
// the pipeline. All mutations go through the pipeline state machine;
// other components receive snapshots.
type Candidate struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`

	// OpportunityID ties the candidate to the opportunity whose
	// snapshot series drives momentum analytics.
	OpportunityID uuid.UUID `json:"opportunity_id"`

	State         Stage         `json:"state"`
	ContactStatus ContactStatus `json:"contact_status,omitempty"`

	IsPotentialPrincipal   bool   `json:"is_potential_principal,omitempty"`
	AwaitingRecommendation bool   `json:"awaiting_recommendation,omitempty"`
	Archived               bool   `json:"archived,omitempty"`
	ArchiveReason          string `json:"archive_reason,omitempty"`
	Notes                  string `json:"notes,omitempty"`

	// Milestone timestamps. Each is set exactly once, the first time
	// its event fires; re-firing the same event never moves it.
	SourcedAt              *time.Time `json:"sourced_at,omitempty"`
	ContactedAt            *time.Time `json:"contacted_at,omitempty"`
	OnboardedAt            *time.Time `json:"onboarded_at,omitempty"`
	PreferencesCollectedAt *time.Time `json:"preferences_collected_at,omitempty"`
	PreferencesMatchedAt   *time.Time `json:"preferences_matched_at,omitempty"`
	SpecSentAt             *time.Time `json:"spec_sent_at,omitempty"`
	SpecMatchedAt          *time.Time `json:"spec_matched_at,omitempty"`
	RecommendedAt          *time.Time `json:"recommended_at,omitempty"`
	ClientViewedAt         *time.Time `json:"client_viewed_at,omitempty"`

	// One-shot attempt flags with their own timestamps
	ContactAttempted      bool       `json:"contact_attempted,omitempty"`
	ContactAttemptedAt    *time.Time `json:"contact_attempted_at,omitempty"`
	OnboardingAttempted   bool       `json:"onboarding_attempted,omitempty"`
	OnboardingAttemptedAt *time.Time `json:"onboarding_attempted_at,omitempty"`

	LastAction     *LastAction     `json:"last_action,omitempty"`
	ProfileChanges []ProfileChange `json:"profile_changes,omitempty"`

	// Raw supplied scores; derived scores are computed on read by the
	// score aggregator and never stored back.
	MatchScore         *float64 `json:"match_score,omitempty"`
	DeployabilityScore *float64 `json:"deployability_score,omitempty"`
	SuitabilityScore   *float64 `json:"suitability_score,omitempty"`
	ReadinessScore     *float64 `json:"readiness_score,omitempty"`

	SuitabilityEvidence *EvidenceBundle `json:"suitability_evidence,omitempty"`
	ReadinessEvidence   *EvidenceBundle `json:"readiness_evidence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCandidate creates a candidate at sourcing intake
func NewCandidate(name string, opportunityID uuid.UUID, now time.Time) *Candidate {
	sourced := now
	return &Candidate{
		ID:            uuid.New(),
		Name:          name,
		OpportunityID: opportunityID,
		State:         StageSourced,
		ContactStatus: ContactNotCalled,
		SourcedAt:     &sourced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy of the candidate so that callers holding
// snapshots never observe later mutations.
func (c *Candidate) Clone() *Candidate {
	cp := *c
	cp.SourcedAt = cloneTime(c.SourcedAt)
	cp.ContactedAt = cloneTime(c.ContactedAt)
	cp.OnboardedAt = cloneTime(c.OnboardedAt)
	cp.PreferencesCollectedAt = cloneTime(c.PreferencesCollectedAt)
	cp.PreferencesMatchedAt = cloneTime(c.PreferencesMatchedAt)
	cp.SpecSentAt = cloneTime(c.SpecSentAt)
	cp.SpecMatchedAt = cloneTime(c.SpecMatchedAt)
	cp.RecommendedAt = cloneTime(c.RecommendedAt)
	cp.ClientViewedAt = cloneTime(c.ClientViewedAt)
	cp.ContactAttemptedAt = cloneTime(c.ContactAttemptedAt)
	cp.OnboardingAttemptedAt = cloneTime(c.OnboardingAttemptedAt)
	if c.LastAction != nil {
		la := *c.LastAction
		cp.LastAction = &la
	}
	if c.ProfileChanges != nil {
		cp.ProfileChanges = make([]ProfileChange, len(c.ProfileChanges))
		copy(cp.ProfileChanges, c.ProfileChanges)
	}
	cp.MatchScore = cloneFloat(c.MatchScore)
	cp.DeployabilityScore = cloneFloat(c.DeployabilityScore)
	cp.SuitabilityScore = cloneFloat(c.SuitabilityScore)
	cp.ReadinessScore = cloneFloat(c.ReadinessScore)
	if c.SuitabilityEvidence != nil {
		ev := *c.SuitabilityEvidence
		cp.SuitabilityEvidence = &ev
	}
	if c.ReadinessEvidence != nil {
		ev := *c.ReadinessEvidence
		cp.ReadinessEvidence = &ev
	}
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
