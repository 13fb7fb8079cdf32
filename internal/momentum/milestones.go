package momentum

import (
	"math"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// fibonacciMilestones are the recommendation-count thresholds tracked
// for milestone timing
var fibonacciMilestones = []int{1, 2, 3, 5, 8}

// Milestone records when a recommendation-count threshold was first
// reached, measured in days elapsed since the series start.
type Milestone struct {
	Count       int `json:"count"`
	DaysElapsed int `json:"days_elapsed"`
}

// DetectMilestones finds, for each Fibonacci threshold, the first data
// point whose recommendation counter reached it. Thresholds never
// reached are omitted, not zero-filled. The series must be sorted by
// date ascending.
func DetectMilestones(pts []types.TimelinePipelineDataPoint) []Milestone {
	if len(pts) == 0 {
		return nil
	}

	start := pts[0].Date
	var milestones []Milestone
	for _, target := range fibonacciMilestones {
		for _, p := range pts {
			if p.Recommendation >= target {
				elapsed := int(math.Ceil(daysBetween(start, p.Date)))
				milestones = append(milestones, Milestone{Count: target, DaysElapsed: elapsed})
				break
			}
		}
	}
	return milestones
}
