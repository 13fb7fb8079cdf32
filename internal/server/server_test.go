package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-pipeline/internal/agents"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// memStore is an in-memory Store for handler tests
type memStore struct {
	mu         sync.Mutex
	candidates map[uuid.UUID]*types.Candidate
	snapshots  map[uuid.UUID][]types.TimelinePipelineDataPoint
	results    map[string][]types.RawAgentJobResult
}

func newMemStore() *memStore {
	return &memStore{
		candidates: make(map[uuid.UUID]*types.Candidate),
		snapshots:  make(map[uuid.UUID][]types.TimelinePipelineDataPoint),
		results:    make(map[string][]types.RawAgentJobResult),
	}
}

func (m *memStore) SaveCandidate(_ context.Context, c *types.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[c.ID] = c.Clone()
	return nil
}

func (m *memStore) GetCandidate(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (m *memStore) ListCandidates(_ context.Context, opportunityID uuid.UUID) ([]*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*types.Candidate
	for _, c := range m.candidates {
		if c.OpportunityID == opportunityID {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (m *memStore) AppendSnapshot(_ context.Context, p *types.TimelinePipelineDataPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[p.OpportunityID] = append(m.snapshots[p.OpportunityID], *p)
	return nil
}

func (m *memStore) ListSnapshots(_ context.Context, opportunityID uuid.UUID) ([]types.TimelinePipelineDataPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.TimelinePipelineDataPoint(nil), m.snapshots[opportunityID]...), nil
}

func (m *memStore) SaveAgentResults(_ context.Context, candidateID uuid.UUID, stage string, results []types.RawAgentJobResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[candidateID.String()+"/"+stage] = results
	return nil
}

func (m *memStore) GetAgentResults(_ context.Context, candidateID uuid.UUID, stage string) ([]types.RawAgentJobResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[candidateID.String()+"/"+stage], nil
}

func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	store := newMemStore()
	srv := NewWithStore(Config{Port: 0, Actor: "test"}, store, agents.NewRegistry(agents.DefaultTemplates()))
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func createCandidate(t *testing.T, srv *Server, opportunityID uuid.UUID) types.Candidate {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/candidates", types.CreateCandidateRequest{
		Name:          "Ada Lovelace",
		OpportunityID: opportunityID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCandidate_StartsSourced(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	assert.Equal(t, types.StageSourced, c.State)
	assert.NotNil(t, c.SourcedAt)
	assert.Equal(t, types.ContactNotCalled, c.ContactStatus)
}

func TestCreateCandidate_RequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/candidates", map[string]any{
		"opportunity_id": uuid.New(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransition_HappyPath(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", c.ID),
		types.TransitionRequest{Target: "onboarded", Actor: "recruiter"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, types.StageOnboarded, updated.State)
	assert.NotNil(t, updated.OnboardedAt)
	assert.Equal(t, "Moved to onboarded", updated.LastAction.Action)
}

func TestTransition_InvalidTarget(t *testing.T) {
	srv, store := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", c.ID),
		types.TransitionRequest{Target: "interviewing"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// All-or-nothing: stored candidate is unchanged
	stored, err := store.GetCandidate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StageSourced, stored.State)
}

func TestTransition_LegacyContactTokenMigrates(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", c.ID),
		types.TransitionRequest{Target: "contact"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, types.StageSourced, updated.State)
}

func TestTransition_UnknownCandidate(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", uuid.New()),
		types.TransitionRequest{Target: "onboarded"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnfit_RequiresReason(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/unfit", c.ID),
		map[string]string{"reason": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/unfit", c.ID),
		types.ReasonRequest{Reason: "Salary not match"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, types.StagePreferencesUnfit, updated.State)
}

func TestContactStatus_SetWhileSourced(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/contact-status", c.ID),
		types.ContactStatusRequest{Status: "called"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, types.ContactCalled, updated.ContactStatus)
	assert.Equal(t, types.StageSourced, updated.State)
}

func TestFlags_ClearAwaitingRecommendation(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", c.ID),
		types.TransitionRequest{Target: "specMatched"})
	require.Equal(t, http.StatusOK, rec.Code)

	var matched types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matched))
	assert.True(t, matched.AwaitingRecommendation)

	cleared := false
	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/flags", c.ID),
		types.FlagsRequest{AwaitingRecommendation: &cleared})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.False(t, updated.AwaitingRecommendation)
}

func TestMilestone_StampsAndProjects(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/milestones", c.ID),
		types.MilestoneRequest{Milestone: "contacted", Actor: "recruiter"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.NotNil(t, updated.ContactedAt)
	assert.Equal(t, "Contacted", updated.LastAction.Action)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/candidates/%s/timeline", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []types.TimelineEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	titles := make([]string, 0, len(resp.Events))
	for _, e := range resp.Events {
		titles = append(titles, e.Title)
	}
	assert.Contains(t, titles, "Contacted")
}

func TestMilestone_UnknownTokenRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/milestones", c.ID),
		types.MilestoneRequest{Milestone: "hired"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeline_ReturnsOrderedEvents(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", c.ID),
		types.TransitionRequest{Target: "onboarded"})

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/candidates/%s/timeline", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []types.TimelineEvent `json:"events"`
		Count  int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Events), resp.Count)
	assert.NotEmpty(t, resp.Events)
}

func TestScores_DerivedFromMatchScore(t *testing.T) {
	srv, store := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	stored, err := store.GetCandidate(context.Background(), c.ID)
	require.NoError(t, err)
	match := 80.0
	stored.MatchScore = &match
	require.NoError(t, store.SaveCandidate(context.Background(), stored))

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/candidates/%s/scores", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var scores struct {
		Deployability int    `json:"deployability"`
		Suitability   int    `json:"suitability"`
		Readiness     int    `json:"readiness"`
		Band          string `json:"deployability_band"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scores))
	assert.Equal(t, 80, scores.Deployability)
	assert.Equal(t, 78, scores.Suitability)
	assert.Equal(t, 82, scores.Readiness)
	assert.Equal(t, "strong", scores.Band)
}

func TestListCandidates_RankedByStagePriority(t *testing.T) {
	srv, _ := newTestServer(t)
	opp := uuid.New()
	a := createCandidate(t, srv, opp)
	b := createCandidate(t, srv, opp)

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/candidates/%s/transition", b.ID),
		types.TransitionRequest{Target: "recommended"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/candidates?opportunity_id="+opp.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Candidates []types.Candidate `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, b.ID, resp.Candidates[0].ID, "recommended candidate ranks first")
	assert.Equal(t, a.ID, resp.Candidates[1].ID)
}

func TestIngestAgentResults_SchemaValidated(t *testing.T) {
	srv, _ := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	// Missing required name is rejected
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/candidates/%s/agent-results?stage=specMatched", c.ID),
		bytes.NewReader([]byte(`[{"score": 90}]`)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid bundle is accepted
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/candidates/%s/agent-results?stage=specMatched", c.ID),
		bytes.NewReader([]byte(`[{"name": "Check Matching Skills", "score": 90, "threshold": 70, "completed": true}]`)))
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestEvaluateAgentResults_NormalizesStored(t *testing.T) {
	srv, store := newTestServer(t)
	c := createCandidate(t, srv, uuid.New())

	score := 90.0
	completed := true
	require.NoError(t, store.SaveAgentResults(context.Background(), c.ID, "specMatched",
		[]types.RawAgentJobResult{{Name: "Check Matching Skills", Score: &score, Completed: &completed}}))

	rec := doJSON(t, srv, http.MethodGet,
		fmt.Sprintf("/candidates/%s/agent-results?stage=specMatched", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var eval agents.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	require.Len(t, eval.Results, 1)
	assert.Equal(t, 70.0, eval.Results[0].Threshold, "missing threshold defaults to 70")
	assert.True(t, eval.Results[0].Passed)
	assert.Equal(t, 1, eval.CompletedCount)
	assert.False(t, eval.Placeholder)
}

func TestAgentInstances_Lifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/agent-instances",
		map[string]string{"template_id": "skills-match"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var inst agents.Instance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inst))

	rec = doJSON(t, srv, http.MethodPost, "/agent-instances/"+inst.ID+"/toggle",
		map[string]bool{"enabled": false})
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/agent-instances/"+inst.ID, nil)
	del := httptest.NewRecorder()
	srv.Handler().ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)
}

func TestMomentum_DegenerateSeries(t *testing.T) {
	srv, _ := newTestServer(t)
	opp := uuid.New()

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/opportunities/%s/momentum", opp), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Score      int  `json:"score"`
		Degenerate bool `json:"degenerate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Degenerate)
	assert.Equal(t, 0, report.Score)
}

func TestSnapshotsAndMomentum_EndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	opp := uuid.New()

	recs := []int{0, 1, 1, 2, 3, 5, 8}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range recs {
		rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/opportunities/%s/snapshots", opp),
			types.SnapshotRequest{
				Date:           start.AddDate(0, 0, i).Format("2006-01-02"),
				Recommendation: r,
			})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/opportunities/%s/momentum", opp), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Score      int    `json:"score"`
		Descriptor string `json:"descriptor"`
		Milestones []struct {
			Count       int `json:"count"`
			DaysElapsed int `json:"days_elapsed"`
		} `json:"milestones"`
		Degenerate bool `json:"degenerate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Degenerate)
	require.Len(t, report.Milestones, 5)
	assert.Equal(t, 1, report.Milestones[0].Count)
	assert.Equal(t, 1, report.Milestones[0].DaysElapsed)
	assert.Equal(t, 8, report.Milestones[4].Count)
	assert.Equal(t, 6, report.Milestones[4].DaysElapsed)
}
