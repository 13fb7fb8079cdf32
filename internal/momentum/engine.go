// Package momentum converts an opportunity's daily stage-count
// snapshots into a bounded momentum score, velocity deltas and
// milestone timings.
package momentum

import (
	"math"
	"sort"
	"time"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// Momentum score composition weights. The score blends total progress,
// recent velocity and growth consistency; see computeScore.
const (
	progressWeight    = 0.4
	velocityWeight    = 0.4
	consistencyWeight = 0.2

	// progressSaturation is the cumulative recommendation count at
	// which the progress component maxes out
	progressSaturation = 21.0
	// velocitySaturation is the daily recommendation gain at which the
	// velocity component maxes out
	velocitySaturation = 2.0
	// recentWindow is the number of trailing observations feeding the
	// velocity component
	recentWindow = 7
)

// velocityScale normalizes daily velocity onto the 0-100 momentum range
const velocityScale = 5

// Descriptor band boundaries
const (
	hotMin     = 80
	warmMin    = 60
	coolingMin = 40
)

// Report is the full momentum analysis for one opportunity's series
type Report struct {
	Score      int    `json:"score"`
	Descriptor string `json:"descriptor"`

	TodayDelta      int `json:"today_delta"`
	SevenDayDelta   int `json:"seven_day_delta"`
	FifteenDayDelta int `json:"fifteen_day_delta"`

	HistoricalBaseline int `json:"historical_baseline"`
	HistoricalDelta    int `json:"historical_delta"`

	Milestones []Milestone `json:"milestones,omitempty"`

	// Degenerate marks a best-effort result computed from fewer than
	// two data points; deltas are zero, not errors.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Compute analyzes an opportunity's snapshot series. The series is
// sorted by date before analysis; the latest observation date anchors
// the rolling windows so results are deterministic for a given series.
// A series with fewer than two points yields zero deltas and the
// degenerate flag rather than an error.
func Compute(series []types.TimelinePipelineDataPoint) Report {
	pts := make([]types.TimelinePipelineDataPoint, len(series))
	copy(pts, series)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })

	score := computeScore(pts)
	report := Report{
		Score:              score,
		Descriptor:         descriptorFor(score),
		HistoricalBaseline: historicalBaseline(score),
		Milestones:         DetectMilestones(pts),
	}
	report.HistoricalDelta = score - report.HistoricalBaseline

	if len(pts) < 2 {
		report.Degenerate = true
		return report
	}

	report.TodayDelta = todayDelta(pts)
	now := pts[len(pts)-1].Date
	report.SevenDayDelta = windowVelocityChange(pts, now, 7)
	report.FifteenDayDelta = windowVelocityChange(pts, now, 15)
	return report
}

// computeScore is the primary momentum formula: a pure, bounded 0-100
// function of the recommendation history.
//
//	progress    = min(1, log1p(total) / log1p(21))
//	velocity    = min(1, meanDailyGain(trailing 7 obs) / 2)
//	consistency = share of consecutive intervals with any gain
//	score       = round(100 * (0.4*progress + 0.4*velocity + 0.2*consistency))
//
// It is monotonic in sustained recommendation growth: more cumulative
// recommendations, faster recent gains and steadier gains each raise
// the score, and it saturates rather than growing without bound.
func computeScore(pts []types.TimelinePipelineDataPoint) int {
	if len(pts) == 0 {
		return 0
	}

	total := float64(pts[len(pts)-1].Recommendation)
	progress := math.Min(1, math.Log1p(total)/math.Log1p(progressSaturation))

	velocity := 0.0
	consistency := 0.0
	if len(pts) > 1 {
		start := len(pts) - recentWindow
		if start < 0 {
			start = 0
		}
		gain := float64(pts[len(pts)-1].Recommendation - pts[start].Recommendation)
		days := math.Max(1, daysBetween(pts[start].Date, pts[len(pts)-1].Date))
		velocity = math.Min(1, (gain/days)/velocitySaturation)

		growing := 0
		for i := 1; i < len(pts); i++ {
			if pts[i].Recommendation > pts[i-1].Recommendation {
				growing++
			}
		}
		consistency = float64(growing) / float64(len(pts)-1)
	}

	raw := 100 * (progressWeight*progress + velocityWeight*velocity + consistencyWeight*consistency)
	return clampInt(int(math.Round(raw)), 0, 100)
}

func descriptorFor(score int) string {
	switch {
	case score >= hotMin:
		return "Hot"
	case score >= warmMin:
		return "Warm"
	case score >= coolingMin:
		return "Cooling"
	default:
		return "Cold"
	}
}

// todayDelta is the instantaneous velocity between the two latest
// observations, scaled onto the momentum range.
func todayDelta(pts []types.TimelinePipelineDataPoint) int {
	latest := pts[len(pts)-1]
	previous := pts[len(pts)-2]
	recDelta := float64(latest.Recommendation - previous.Recommendation)
	days := math.Max(1, daysBetween(previous.Date, latest.Date))
	return int(math.Round((recDelta / days) * velocityScale))
}

// historicalBaseline derives a deterministic comparison reference from
// the momentum score itself. It is a pure function of the score, not a
// measured quantity.
func historicalBaseline(score int) int {
	variance := math.Mod(float64(score)*0.15, 20) - 10
	return clampInt(int(math.Round(float64(score)+variance)), 10, 90)
}

// daysBetween returns the whole and fractional days from a to b
func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
