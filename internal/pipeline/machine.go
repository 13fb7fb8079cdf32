package pipeline

import (
	"fmt"
	"time"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// stampForStage returns the milestone timestamp field owned by a stage,
// or nil when the stage stamps nothing (terminal exits).
func stampForStage(c *types.Candidate, s types.Stage) **time.Time {
	switch s {
	case types.StageSourced:
		return &c.SourcedAt
	case types.StageOnboarded:
		return &c.OnboardedAt
	case types.StagePreferenceMatched:
		return &c.PreferencesMatchedAt
	case types.StageSpecMatched:
		return &c.SpecMatchedAt
	case types.StageRecommended:
		return &c.RecommendedAt
	default:
		return nil
	}
}

// Transition moves a candidate to the target stage and returns the
// updated copy. The input candidate is never mutated, so a failed
// transition cannot leave partial state behind.
//
// Stamping is idempotent: the timestamp owned by the target stage is
// set only if it is not already set. Transitioning to the current
// stage is a no-op that still overwrites lastAction. A specMatched
// transition additionally raises the awaitingRecommendation flag,
// which must be cleared explicitly before a recommended transition is
// considered ready.
func Transition(c *types.Candidate, target types.Stage, actor string, now time.Time) (*types.Candidate, error) {
	if !ValidStage(target) {
		return nil, &InvalidStateError{Target: string(target)}
	}

	out := c.Clone()
	if stamp := stampForStage(out, target); stamp != nil && *stamp == nil {
		t := now
		*stamp = &t
	}
	out.State = target
	if target == types.StageSpecMatched {
		out.AwaitingRecommendation = true
	}
	touch(out, fmt.Sprintf("Moved to %s", target), actor, now)
	return out, nil
}

// SetContactStatus updates the outreach sub-state. It is only valid
// while the candidate is sourced and never changes the stage itself.
func SetContactStatus(c *types.Candidate, status types.ContactStatus, actor string, now time.Time) (*types.Candidate, error) {
	if !ValidContactStatus(status) {
		return nil, &ValidationError{Field: "contact_status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	if c.State != types.StageSourced {
		return nil, &ValidationError{Field: "contact_status", Message: fmt.Sprintf("only settable while sourced, candidate is %s", c.State)}
	}

	out := c.Clone()
	out.ContactStatus = status
	touch(out, fmt.Sprintf("Contact status set to %s", status), actor, now)
	return out, nil
}

// MarkPreferencesUnfit force-exits the candidate to the preferences
// unfit terminal state regardless of current stage. The reason is
// required and is appended to the candidate's notes.
func MarkPreferencesUnfit(c *types.Candidate, reason, actor string, now time.Time) (*types.Candidate, error) {
	if reason == "" {
		return nil, &ValidationError{Field: "reason", Message: "unfit reason is required"}
	}

	out := c.Clone()
	out.State = types.StagePreferencesUnfit
	if out.Notes != "" {
		out.Notes += "\n"
	}
	out.Notes += "Unfit: " + reason
	touch(out, "Marked preferences unfit", actor, now)
	return out, nil
}

// Archive moves the candidate to the archived side channel. Archival
// does not touch the stage; it is a flag alongside it, and a reason
// code is required.
func Archive(c *types.Candidate, reason, actor string, now time.Time) (*types.Candidate, error) {
	if reason == "" {
		return nil, &ValidationError{Field: "reason", Message: "archive reason is required"}
	}

	out := c.Clone()
	out.Archived = true
	out.ArchiveReason = reason
	touch(out, "Archived: "+reason, actor, now)
	return out, nil
}

// SetAwaitingRecommendation toggles the flag raised by a specMatched
// transition. Clearing it marks the candidate ready for the
// recommended stage.
func SetAwaitingRecommendation(c *types.Candidate, awaiting bool, actor string, now time.Time) *types.Candidate {
	out := c.Clone()
	out.AwaitingRecommendation = awaiting
	if awaiting {
		touch(out, "Awaiting recommendation", actor, now)
	} else {
		touch(out, "Cleared awaiting recommendation", actor, now)
	}
	return out
}

// SetPotentialPrincipal toggles the principal flag, independent of stage
func SetPotentialPrincipal(c *types.Candidate, potential bool, actor string, now time.Time) *types.Candidate {
	out := c.Clone()
	out.IsPotentialPrincipal = potential
	if potential {
		touch(out, "Flagged as potential principal", actor, now)
	} else {
		touch(out, "Unflagged as potential principal", actor, now)
	}
	return out
}

// milestoneStamps maps milestone tokens to the timestamp they own,
// for events that fire outside stage transitions
var milestoneStamps = map[string]struct {
	stamp  func(*types.Candidate) **time.Time
	action string
}{
	"contacted":            {func(c *types.Candidate) **time.Time { return &c.ContactedAt }, "Contacted"},
	"preferencesCollected": {func(c *types.Candidate) **time.Time { return &c.PreferencesCollectedAt }, "Preferences collected"},
	"specSent":             {func(c *types.Candidate) **time.Time { return &c.SpecSentAt }, "Spec sent"},
	"clientViewed":         {func(c *types.Candidate) **time.Time { return &c.ClientViewedAt }, "Client viewed"},
}

// MarkMilestone records a milestone event that is not tied to a stage
// transition: contacted, preferencesCollected, specSent, clientViewed.
// Stamping is one-time like stage stamps; re-firing the same milestone
// is an idempotent no-op that still refreshes lastAction.
func MarkMilestone(c *types.Candidate, milestone, actor string, now time.Time) (*types.Candidate, error) {
	m, ok := milestoneStamps[milestone]
	if !ok {
		return nil, &ValidationError{Field: "milestone", Message: fmt.Sprintf("unknown milestone %q", milestone)}
	}

	out := c.Clone()
	if stamp := m.stamp(out); *stamp == nil {
		t := now
		*stamp = &t
	}
	touch(out, m.action, actor, now)
	return out, nil
}

// MarkContactAttempted records the first contact attempt. Subsequent
// calls are idempotent no-ops that still refresh lastAction.
func MarkContactAttempted(c *types.Candidate, actor string, now time.Time) *types.Candidate {
	out := c.Clone()
	if !out.ContactAttempted {
		out.ContactAttempted = true
		t := now
		out.ContactAttemptedAt = &t
	}
	touch(out, "Contact attempted", actor, now)
	return out
}

// MarkOnboardingAttempted records the first onboarding attempt.
// Subsequent calls are idempotent no-ops that still refresh lastAction.
func MarkOnboardingAttempted(c *types.Candidate, actor string, now time.Time) *types.Candidate {
	out := c.Clone()
	if !out.OnboardingAttempted {
		out.OnboardingAttempted = true
		t := now
		out.OnboardingAttemptedAt = &t
	}
	touch(out, "Onboarding attempted", actor, now)
	return out
}

// RecordProfileChange appends an entry to the candidate's append-only
// profile change log
func RecordProfileChange(c *types.Candidate, changeType, details, actor string, now time.Time) *types.Candidate {
	out := c.Clone()
	out.ProfileChanges = append(out.ProfileChanges, types.ProfileChange{
		Type:    changeType,
		Details: details,
		Date:    now,
	})
	touch(out, "Profile updated: "+changeType, actor, now)
	return out
}

// ReadyForRecommendation reports whether a specMatched candidate has
// cleared the awaiting-recommendation gate
func ReadyForRecommendation(c *types.Candidate) bool {
	return c.State == types.StageSpecMatched && !c.AwaitingRecommendation
}

// touch overwrites lastAction and refreshes the update timestamp
func touch(c *types.Candidate, action, actor string, now time.Time) {
	c.LastAction = &types.LastAction{Action: action, By: actor, Date: now}
	c.UpdatedAt = now
}
