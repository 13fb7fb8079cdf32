package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// milestoneEvents maps each milestone timestamp to its timeline title
// and category, in a fixed scan order so projection output is stable.
var milestoneEvents = []struct {
	title    string
	category string
	at       func(*types.Candidate) *time.Time
}{
	{"Sourced", types.EventCategorySource, func(c *types.Candidate) *time.Time { return c.SourcedAt }},
	{"Contacted", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.ContactedAt }},
	{"Contact attempted", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.ContactAttemptedAt }},
	{"Onboarded", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.OnboardedAt }},
	{"Onboarding attempted", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.OnboardingAttemptedAt }},
	{"Preferences collected", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.PreferencesCollectedAt }},
	{"Preferences matched", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.PreferencesMatchedAt }},
	{"Spec sent", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.SpecSentAt }},
	{"Spec matched", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.SpecMatchedAt }},
	{"Recommended", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.RecommendedAt }},
	{"Client viewed", types.EventCategoryStatus, func(c *types.Candidate) *time.Time { return c.ClientViewedAt }},
}

// ProjectTimeline derives the candidate's activity timeline from every
// populated milestone timestamp, the lastAction record, and each
// profile change entry, ordered descending by date.
//
// This is a pure read-side projection: it never mutates the candidate,
// and the same input always yields identical output. Ties on date
// resolve by the fixed scan order above, then profile entries, then
// the action record.
func ProjectTimeline(c *types.Candidate) []types.TimelineEvent {
	events := make([]types.TimelineEvent, 0, len(milestoneEvents)+len(c.ProfileChanges)+1)

	for _, m := range milestoneEvents {
		if t := m.at(c); t != nil {
			events = append(events, types.TimelineEvent{
				Category: m.category,
				Title:    m.title,
				Date:     *t,
			})
		}
	}

	for _, pc := range c.ProfileChanges {
		events = append(events, types.TimelineEvent{
			Category: types.EventCategoryProfile,
			Title:    fmt.Sprintf("Profile change: %s", pc.Type),
			Detail:   pc.Details,
			Date:     pc.Date,
		})
	}

	if c.LastAction != nil {
		events = append(events, types.TimelineEvent{
			Category: types.EventCategoryAction,
			Title:    c.LastAction.Action,
			Detail:   "by " + c.LastAction.By,
			Date:     c.LastAction.Date,
		})
	}

	// Stable sort keeps the append order on equal dates
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events
}
