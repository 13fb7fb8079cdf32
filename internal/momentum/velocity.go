package momentum

import (
	"math"
	"time"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// windowVelocityChange compares the recommendation velocity of the
// current W-day window against the preceding W-day window, both
// anchored on now (the latest observation date).
//
// A window with zero or one data point collapses to a zero-delta
// window rather than failing, so short series always produce a result.
func windowVelocityChange(pts []types.TimelinePipelineDataPoint, now time.Time, windowDays int) int {
	windowStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	var current, previous []types.TimelinePipelineDataPoint
	for _, p := range pts {
		switch {
		case !p.Date.Before(windowStart):
			current = append(current, p)
		case !p.Date.Before(previousStart):
			previous = append(previous, p)
		}
	}

	change := windowVelocity(current) - windowVelocity(previous)
	return int(math.Round(change))
}

// windowVelocity computes (delta / duration) * 5 across one window's
// first and last points
func windowVelocity(window []types.TimelinePipelineDataPoint) float64 {
	if len(window) < 2 {
		return 0
	}
	first := window[0]
	last := window[len(window)-1]
	delta := float64(last.Recommendation - first.Recommendation)
	duration := math.Max(1, daysBetween(first.Date, last.Date))
	return (delta / duration) * velocityScale
}
