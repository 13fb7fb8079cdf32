package agents

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// TemplateKind distinguishes how often an instantiated check runs
type TemplateKind string

// Template kinds: stage-level runs once per stage, candidate-level
// once per candidate.
const (
	StageLevel     TemplateKind = "stage-level"
	CandidateLevel TemplateKind = "candidate-level"
)

// Template is a reusable check definition
type Template struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Kind        TemplateKind `json:"kind"`
	Threshold   float64      `json:"threshold"`
}

// Instance is one activated check created from a template
type Instance struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

// Registry holds check templates and their activated instances. The
// instance to template mapping is stored explicitly at instantiation
// time; the id-suffix fallback only serves instances imported from
// legacy payloads.
type Registry struct {
	mu         sync.RWMutex
	templates  map[string]Template
	instances  []Instance
	byInstance map[string]string
}

// DefaultTemplates returns the built-in check templates
func DefaultTemplates() []Template {
	return []Template{
		{ID: "skills-match", Name: "Check Matching Skills", Description: "Compares candidate skills to the spec requirements", Kind: StageLevel, Threshold: 70},
		{ID: "preference-fit", Name: "Check Preference Fit", Description: "Compares collected preferences to the opportunity terms", Kind: StageLevel, Threshold: 60},
		{ID: "doc-complete", Name: "Check Documents", Description: "Verifies uploaded document metadata is complete", Kind: CandidateLevel, Threshold: 0},
		{ID: "reference-check", Name: "Check References", Description: "Summarizes reference call outcomes", Kind: CandidateLevel, Threshold: 80},
	}
}

// NewRegistry creates a registry seeded with the given templates
func NewRegistry(templates []Template) *Registry {
	r := &Registry{
		templates:  make(map[string]Template, len(templates)),
		byInstance: make(map[string]string),
	}
	for _, t := range templates {
		r.templates[t.ID] = t
	}
	return r
}

// Instantiate activates a template. The instance id embeds the
// template id and creation timestamp; the reverse mapping is recorded
// explicitly so display lookups never depend on id parsing.
func (r *Registry) Instantiate(templateID string, now time.Time) (Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tmpl, ok := r.templates[templateID]
	if !ok {
		return Instance{}, fmt.Errorf("unknown template: %s", templateID)
	}

	inst := Instance{
		ID:         fmt.Sprintf("%s-%d", templateID, now.UnixMilli()),
		TemplateID: templateID,
		Name:       tmpl.Name,
		Enabled:    true,
		CreatedAt:  now,
	}
	r.instances = append(r.instances, inst)
	r.byInstance[inst.ID] = templateID
	return inst, nil
}

// Import registers an instance produced elsewhere (e.g. loaded from
// storage). When the template id is empty it is recovered best-effort
// by stripping the trailing timestamp segment from the instance id.
func (r *Registry) Import(inst Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inst.TemplateID == "" {
		inst.TemplateID = stripTimestampSuffix(inst.ID)
	}
	r.instances = append(r.instances, inst)
	r.byInstance[inst.ID] = inst.TemplateID
}

// TemplateFor resolves an instance back to its template for display.
// Unresolvable templates are tolerated: ok is false and the caller
// renders without a description.
func (r *Registry) TemplateFor(instanceID string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templateID, ok := r.byInstance[instanceID]
	if !ok {
		templateID = stripTimestampSuffix(instanceID)
	}
	tmpl, ok := r.templates[templateID]
	return tmpl, ok
}

// Describe returns the template description for an instance, or the
// empty string when the template cannot be resolved
func (r *Registry) Describe(instanceID string) string {
	tmpl, ok := r.TemplateFor(instanceID)
	if !ok {
		return ""
	}
	return tmpl.Description
}

// Toggle flips one instance's enabled flag, independent of any other
// instance. It reports whether the instance was found.
func (r *Registry) Toggle(instanceID string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.instances {
		if r.instances[i].ID == instanceID {
			r.instances[i].Enabled = enabled
			return true
		}
	}
	return false
}

// Remove filters out one instance. There are no cascading effects.
func (r *Registry) Remove(instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.instances[:0]
	for _, inst := range r.instances {
		if inst.ID != instanceID {
			kept = append(kept, inst)
		}
	}
	r.instances = kept
	delete(r.byInstance, instanceID)
}

// Instances returns a copy of all instances
func (r *Registry) Instances() []Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// EnabledChecks returns the check configurations for all enabled
// instances of the given kind
func (r *Registry) EnabledChecks(kind TemplateKind) []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var checks []Check
	for _, inst := range r.instances {
		if !inst.Enabled {
			continue
		}
		tmpl, ok := r.templates[inst.TemplateID]
		if !ok || tmpl.Kind != kind {
			continue
		}
		checks = append(checks, Check{Name: tmpl.Name, Threshold: tmpl.Threshold})
	}
	return checks
}

// stripTimestampSuffix removes the trailing "-<timestamp>" segment
// from a legacy instance id. Ids without a numeric suffix pass through
// unchanged.
func stripTimestampSuffix(instanceID string) string {
	idx := strings.LastIndex(instanceID, "-")
	if idx <= 0 {
		return instanceID
	}
	suffix := instanceID[idx+1:]
	for _, ch := range suffix {
		if ch < '0' || ch > '9' {
			return instanceID
		}
	}
	return instanceID[:idx]
}
