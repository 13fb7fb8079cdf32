// Package scoring combines suitability and readiness sub-scores into
// an overall deployability score with presentation-agnostic banding.
package scoring

import (
	"math"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// Derivation factors for missing sub-scores. They only fill gaps;
// supplied sub-scores are never overwritten.
const (
	suitabilityFactor = 0.97
	readinessFactor   = 1.03
)

// Band boundaries for the three-tier classification
const (
	strongMin   = 80
	moderateMin = 60
)

// Band is a severity tier for a 0-100 score
type Band string

// Score bands, applied uniformly to deployability, suitability and readiness
const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// BandFor classifies a score into its tier
func BandFor(score int) Band {
	switch {
	case score >= strongMin:
		return BandStrong
	case score >= moderateMin:
		return BandModerate
	default:
		return BandWeak
	}
}

// Result is the aggregated score set for one candidate. Evidence stays
// attributed to its own factor; the aggregator never merges bundles.
type Result struct {
	Deployability int `json:"deployability"`
	Suitability   int `json:"suitability"`
	Readiness     int `json:"readiness"`

	DeployabilityBand Band `json:"deployability_band"`
	SuitabilityBand   Band `json:"suitability_band"`
	ReadinessBand     Band `json:"readiness_band"`

	SuitabilityEvidence *types.EvidenceBundle `json:"suitability_evidence,omitempty"`
	ReadinessEvidence   *types.EvidenceBundle `json:"readiness_evidence,omitempty"`
}

// Aggregate computes the deployability score set from a candidate's
// raw supplied scores.
//
// Deployability falls back from the supplied value to the match score
// to zero. Missing suitability derives as round(deployability * 0.97)
// and missing readiness as round(deployability * 1.03); supplied
// values win unconditionally.
func Aggregate(c *types.Candidate) Result {
	deployability := 0.0
	switch {
	case c.DeployabilityScore != nil:
		deployability = *c.DeployabilityScore
	case c.MatchScore != nil:
		deployability = *c.MatchScore
	}

	suitability := math.Round(deployability * suitabilityFactor)
	if c.SuitabilityScore != nil {
		suitability = *c.SuitabilityScore
	}

	readiness := math.Round(deployability * readinessFactor)
	if c.ReadinessScore != nil {
		readiness = *c.ReadinessScore
	}

	d := int(math.Round(deployability))
	s := int(math.Round(suitability))
	r := int(math.Round(readiness))

	return Result{
		Deployability:       d,
		Suitability:         s,
		Readiness:           r,
		DeployabilityBand:   BandFor(d),
		SuitabilityBand:     BandFor(s),
		ReadinessBand:       BandFor(r),
		SuitabilityEvidence: c.SuitabilityEvidence,
		ReadinessEvidence:   c.ReadinessEvidence,
	}
}
