// Package types provides type definitions for structured data used throughout the talent-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// TimelinePipelineDataPoint is one daily observation of cumulative
// per-stage candidate counts for an opportunity. Counters are
// cumulative, never deltas, and monotonically non-decreasing across
// the series. Records are append-only, one per observation day.
type TimelinePipelineDataPoint struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Date          time.Time `json:"date"`

	Sourcing       int `json:"sourcing"`
	Matching       int `json:"matching"`
	Deployability  int `json:"deployability"`
	Verifications  int `json:"verifications"`
	Recommendation int `json:"recommendation"`
	Putting        int `json:"putting"`
	Deployment     int `json:"deployment"`
}

// TimelineEvent is one entry in a candidate's derived activity timeline
type TimelineEvent struct {
	// Category is one of "source", "status", "profile", "action"
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Detail   string    `json:"detail,omitempty"`
	Date     time.Time `json:"date"`
}

// Timeline event categories
const (
	EventCategorySource  = "source"
	EventCategoryStatus  = "status"
	EventCategoryProfile = "profile"
	EventCategoryAction  = "action"
)
