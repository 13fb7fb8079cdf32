// Package types provides type definitions for structured data used throughout the talent-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AgentJobResult is a normalized pass/fail check outcome produced by an
// external agent run. The core only reads and aggregates these; it
// never executes checks itself.
type AgentJobResult struct {
	Name string `json:"name"`
	// Score is 0-100; meaningful only when Completed is true
	Score float64 `json:"score"`
	// Threshold is the pass cutoff. Zero marks a binary (non-graded)
	// check, which passes when score > 50.
	Threshold float64 `json:"threshold"`
	Completed bool    `json:"completed"`
	// Passed must never be read when Completed is false; Verdict
	// enforces that at the call site.
	Passed   bool            `json:"passed"`
	Evidence *EvidenceBundle `json:"evidence,omitempty"`
}

// Verdict returns the pass/fail outcome and whether it is meaningful.
// A check that has not completed has no verdict.
func (r *AgentJobResult) Verdict() (passed, ok bool) {
	if !r.Completed {
		return false, false
	}
	return r.Passed, true
}

// PassThreshold applies the binding per-check pass rule: a zero
// threshold marks a binary check passing on score > 50; any other
// threshold passes on score >= threshold.
func PassThreshold(score, threshold float64) bool {
	if threshold == 0 {
		return score > 50
	}
	return score >= threshold
}

// RawAgentJobResult is an agent result as ingested from the external
// evaluation process, with every field optional. The evaluator fills
// defaults and computes the verdict.
type RawAgentJobResult struct {
	Name      string          `json:"name"`
	Score     *float64        `json:"score,omitempty"`
	Threshold *float64        `json:"threshold,omitempty"`
	Completed *bool           `json:"completed,omitempty"`
	Passed    *bool           `json:"passed,omitempty"`
	Evidence  *EvidenceBundle `json:"evidence,omitempty"`
}
