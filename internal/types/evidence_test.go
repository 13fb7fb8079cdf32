package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceItems_UnmarshalTagged(t *testing.T) {
	data := []byte(`{"kind":"pairs","pairs":[{"label":"Skill","value":"Go"}]}`)

	var items EvidenceItems
	require.NoError(t, json.Unmarshal(data, &items))

	assert.Equal(t, EvidencePairs, items.Kind)
	require.Len(t, items.Pairs, 1)
	assert.Equal(t, "Skill", items.Pairs[0].Label)
	assert.Equal(t, "Go", items.Pairs[0].Value)
}

func TestEvidenceItems_UnmarshalLegacyStringArray(t *testing.T) {
	data := []byte(`["5 years Go","Kubernetes in production"]`)

	var items EvidenceItems
	require.NoError(t, json.Unmarshal(data, &items))

	assert.Equal(t, EvidenceStrings, items.Kind)
	assert.Equal(t, []string{"5 years Go", "Kubernetes in production"}, items.Strings)
}

func TestEvidenceItems_UnmarshalLegacyPairArray(t *testing.T) {
	data := []byte(`[{"label":"Years","value":"5"}]`)

	var items EvidenceItems
	require.NoError(t, json.Unmarshal(data, &items))

	assert.Equal(t, EvidencePairs, items.Kind)
	require.Len(t, items.Pairs, 1)
	assert.Equal(t, "Years", items.Pairs[0].Label)
}

func TestEvidenceItems_UnmarshalRejectsUnknownShape(t *testing.T) {
	var items EvidenceItems
	err := json.Unmarshal([]byte(`42`), &items)
	assert.Error(t, err)
}

func TestEvidenceBundle_IsEmpty(t *testing.T) {
	var nilBundle *EvidenceBundle
	assert.True(t, nilBundle.IsEmpty())

	empty := &EvidenceBundle{}
	assert.True(t, empty.IsEmpty())

	withSource := &EvidenceBundle{Source: "LinkedIn"}
	assert.False(t, withSource.IsEmpty())

	withFacts := &EvidenceBundle{
		Matching: EvidenceItems{Kind: EvidenceStrings, Strings: []string{"fact"}},
	}
	assert.False(t, withFacts.IsEmpty())
}

func TestEvidenceBundle_SourcesSplitsSeparators(t *testing.T) {
	b := &EvidenceBundle{Source: "LinkedIn, GitHub and referral"}
	assert.Equal(t, []string{"LinkedIn", "GitHub", "referral"}, b.Sources())
}

func TestEvidenceBundle_SourcesEmpty(t *testing.T) {
	b := &EvidenceBundle{}
	assert.Nil(t, b.Sources())
}
