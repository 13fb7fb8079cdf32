// Package types provides type definitions for structured data used throughout the talent-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EvidenceKind discriminates the two supported evidence item shapes
type EvidenceKind string

const (
	// EvidenceStrings marks evidence items that are plain fact strings
	EvidenceStrings EvidenceKind = "strings"
	// EvidencePairs marks evidence items that are label/value pairs
	EvidencePairs EvidenceKind = "pairs"
)

// EvidencePair is a single labeled evidence fact
type EvidencePair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EvidenceItems is a tagged union of the two evidence item shapes.
// Exactly one of Strings or Pairs is populated, selected by Kind.
type EvidenceItems struct {
	Kind    EvidenceKind   `json:"kind"`
	Strings []string       `json:"strings,omitempty"`
	Pairs   []EvidencePair `json:"pairs,omitempty"`
}

// Len returns the number of evidence facts regardless of shape
func (e *EvidenceItems) Len() int {
	if e.Kind == EvidencePairs {
		return len(e.Pairs)
	}
	return len(e.Strings)
}

// UnmarshalJSON accepts the tagged form as well as the two legacy raw
// forms (bare string array, bare label/value object array) and migrates
// them into the tagged union. This is the one migration path for legacy
// evidence payloads; nothing downstream inspects raw shapes.
func (e *EvidenceItems) UnmarshalJSON(data []byte) error {
	// Tagged form
	type tagged EvidenceItems
	var t tagged
	if err := json.Unmarshal(data, &t); err == nil && t.Kind != "" {
		*e = EvidenceItems(t)
		return nil
	}

	// Legacy: bare string array
	var strs []string
	if err := json.Unmarshal(data, &strs); err == nil {
		*e = EvidenceItems{Kind: EvidenceStrings, Strings: strs}
		return nil
	}

	// Legacy: bare label/value object array
	var pairs []EvidencePair
	if err := json.Unmarshal(data, &pairs); err == nil {
		*e = EvidenceItems{Kind: EvidencePairs, Pairs: pairs}
		return nil
	}

	return fmt.Errorf("evidence items: unrecognized shape: %s", truncateForError(data))
}

func truncateForError(data []byte) string {
	const max = 80
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// EvidenceBundle is the canonical representation of a pass/fail check's
// supporting evidence: matching vs. non-matching facts plus provenance.
type EvidenceBundle struct {
	// Source is a free-text provenance description; it may encode
	// multiple comma- or "and"-separated sources.
	Source      string        `json:"source,omitempty"`
	Matching    EvidenceItems `json:"matching,omitzero"`
	NonMatching EvidenceItems `json:"non_matching,omitzero"`
}

// IsEmpty reports whether the bundle carries no source and no facts.
// Empty bundles must not be consumed as evidence.
func (b *EvidenceBundle) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.Source == "" && b.Matching.Len() == 0 && b.NonMatching.Len() == 0
}

// Sources splits the free-text provenance description into its
// individual source names, honoring comma and "and" separators.
func (b *EvidenceBundle) Sources() []string {
	if b == nil || b.Source == "" {
		return nil
	}
	return splitSources(b.Source)
}

func splitSources(raw string) []string {
	replaced := strings.ReplaceAll(raw, " and ", ",")
	parts := strings.Split(replaced, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
