package pipeline

import (
	"github.com/jonathan/talent-pipeline/internal/types"
)

// stagePriorities orders the progress stages for ranking consumers.
// Terminal exit states carry priority 0 so they sort below any active
// stage. The function is total over the stage enum and strictly
// monotonic with the declared stage order.
var stagePriorities = map[types.Stage]int{
	types.StageSourced:           1,
	types.StageOnboarded:         2,
	types.StagePreferenceMatched: 3,
	types.StageSpecMatched:       4,
	types.StageRecommended:       5,
	types.StagePreferencesUnfit:  0,
	types.StageSkillUnfit:        0,
}

// StagePriority returns the sort priority for a stage. Unknown stages
// return 0, same as terminal states.
func StagePriority(s types.Stage) int {
	return stagePriorities[s]
}

// ValidStage reports whether s is a member of the fixed stage enum
func ValidStage(s types.Stage) bool {
	_, ok := stagePriorities[s]
	return ok
}

// ParseStage resolves a raw stage token to a canonical stage. The
// deprecated "contact" token maps to sourced; outreach progress lives
// in the contact sub-state, not the stage list.
func ParseStage(raw string) (types.Stage, error) {
	if raw == "contact" {
		return types.StageSourced, nil
	}
	s := types.Stage(raw)
	if !ValidStage(s) {
		return "", &InvalidStateError{Target: raw}
	}
	return s, nil
}

var contactStatuses = map[types.ContactStatus]bool{
	types.ContactNotCalled:   true,
	types.ContactCalled:      true,
	types.ContactNotPicked:   true,
	types.ContactInfoMissing: true,
	types.ContactNotAFit:     true,
}

// ValidContactStatus reports whether s is one of the five contact
// sub-state values
func ValidContactStatus(s types.ContactStatus) bool {
	return contactStatuses[s]
}
