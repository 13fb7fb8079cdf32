package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRegistry() *Registry {
	return NewRegistry([]Template{
		{ID: "skills-match", Name: "Check Matching Skills", Description: "Compares candidate skills to the spec", Kind: StageLevel, Threshold: 70},
		{ID: "doc-check", Name: "Check Documents", Description: "Verifies uploaded document metadata", Kind: CandidateLevel, Threshold: 0},
	})
}

func TestRegistry_InstantiateRecordsMapping(t *testing.T) {
	r := seedRegistry()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inst, err := r.Instantiate("skills-match", now)
	require.NoError(t, err)

	assert.Equal(t, "skills-match", inst.TemplateID)
	assert.True(t, inst.Enabled)
	assert.Contains(t, inst.ID, "skills-match-")

	tmpl, ok := r.TemplateFor(inst.ID)
	require.True(t, ok)
	assert.Equal(t, "Check Matching Skills", tmpl.Name)
}

func TestRegistry_InstantiateUnknownTemplate(t *testing.T) {
	r := seedRegistry()

	_, err := r.Instantiate("nope", time.Now())
	assert.Error(t, err)
}

func TestRegistry_DescribeToleratesMissingTemplate(t *testing.T) {
	r := seedRegistry()

	// Unresolvable instances degrade to no description, never an error
	assert.Equal(t, "", r.Describe("deleted-template-1714564800000"))
	inst, err := r.Instantiate("doc-check", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Verifies uploaded document metadata", r.Describe(inst.ID))
}

func TestRegistry_ImportRecoversTemplateFromLegacyID(t *testing.T) {
	r := seedRegistry()

	r.Import(Instance{ID: "skills-match-1714564800000", Enabled: true})

	tmpl, ok := r.TemplateFor("skills-match-1714564800000")
	require.True(t, ok)
	assert.Equal(t, "skills-match", tmpl.ID)
}

func TestRegistry_ToggleIsPerInstance(t *testing.T) {
	r := seedRegistry()
	a, err := r.Instantiate("skills-match", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	b, err := r.Instantiate("skills-match", time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC))
	require.NoError(t, err)

	require.True(t, r.Toggle(a.ID, false))

	instances := r.Instances()
	require.Len(t, instances, 2)
	for _, inst := range instances {
		switch inst.ID {
		case a.ID:
			assert.False(t, inst.Enabled)
		case b.ID:
			assert.True(t, inst.Enabled)
		}
	}
}

func TestRegistry_ToggleUnknownInstance(t *testing.T) {
	r := seedRegistry()
	assert.False(t, r.Toggle("ghost-1", true))
}

func TestRegistry_RemoveIsPureFilter(t *testing.T) {
	r := seedRegistry()
	a, err := r.Instantiate("skills-match", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	b, err := r.Instantiate("doc-check", time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC))
	require.NoError(t, err)

	r.Remove(a.ID)

	instances := r.Instances()
	require.Len(t, instances, 1)
	assert.Equal(t, b.ID, instances[0].ID)
}

func TestRegistry_EnabledChecksFiltersByKind(t *testing.T) {
	r := seedRegistry()
	_, err := r.Instantiate("skills-match", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	docInst, err := r.Instantiate("doc-check", time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC))
	require.NoError(t, err)

	stage := r.EnabledChecks(StageLevel)
	require.Len(t, stage, 1)
	assert.Equal(t, "Check Matching Skills", stage[0].Name)

	r.Toggle(docInst.ID, false)
	assert.Empty(t, r.EnabledChecks(CandidateLevel))
}

func TestStripTimestampSuffix(t *testing.T) {
	assert.Equal(t, "skills-match", stripTimestampSuffix("skills-match-1714564800000"))
	assert.Equal(t, "plain", stripTimestampSuffix("plain"))
	assert.Equal(t, "no-numeric-suffix", stripTimestampSuffix("no-numeric-suffix"))
}
