package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/pto-planner/pkg/db"
	"github.com/jakechorley/pto-planner/pkg/render"
)

// memPlanStore implements db.PlanStore in memory for testing
type memPlanStore struct {
	records []db.PlanRecord
}

func (m *memPlanStore) SavePlan(rec *db.PlanRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *memPlanStore) ListPlans(year, limit int) ([]db.PlanRecord, error) {
	var out []db.PlanRecord
	for _, r := range m.records {
		if year != 0 && r.Year != year {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memPlanStore) GetPlan(id string) (*db.PlanRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, db.ErrPlanNotFound
}

func (m *memPlanStore) DeletePlan(id string) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return db.ErrPlanNotFound
}

func newTestServer(store db.PlanStore) *Server {
	return New(zap.NewNop(), store)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Optimize(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/optimize", map[string]any{
		"year":       2025,
		"pto_budget": 10,
		"country":    "us",
		"strategy":   "bridges",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out optimizeResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, 2025, out.Year)
	assert.Equal(t, 10, out.PTOBudget)
	require.Len(t, out.Plans, 1)
	assert.Equal(t, "Bridge Optimizer", out.Plans[0].Name)
	assert.Len(t, out.Plans[0].PTODates, 10)
	assert.Empty(t, out.SavedIDs)
}

func TestServer_Optimize_AllStrategiesByDefault(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/optimize", map[string]any{
		"year":       2025,
		"pto_budget": 5,
		"country":    "us",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out optimizeResponse
	decodeBody(t, resp, &out)
	assert.Len(t, out.Plans, 4)
}

func TestServer_Optimize_BadStrategy(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/optimize", map[string]any{
		"year":       2025,
		"pto_budget": 5,
		"strategy":   "magic",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Optimize_NegativeBudget(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/optimize", map[string]any{
		"year":       2025,
		"pto_budget": -1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_Optimize_SaveRoundTrip(t *testing.T) {
	store := &memPlanStore{}
	srv := newTestServer(store)

	resp := postJSON(t, srv, "/api/optimize", map[string]any{
		"year":       2025,
		"pto_budget": 8,
		"country":    "us",
		"strategy":   "longest",
		"save":       true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out optimizeResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.SavedIDs, 1)
	require.Len(t, store.records, 1)
	assert.Equal(t, "longest", store.records[0].Strategy)

	req := httptest.NewRequest(http.MethodGet, "/api/plans/"+out.SavedIDs[0], nil)
	getResp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var doc struct {
		ID   string          `json:"id"`
		Plan render.PlanJSON `json:"plan"`
	}
	decodeBody(t, getResp, &doc)
	assert.Equal(t, out.SavedIDs[0], doc.ID)
	assert.Equal(t, "Longest Single Vacation", doc.Plan.Name)
}

func TestServer_GroupOptimize(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/groups/optimize", map[string]any{
		"year":     2025,
		"strategy": "bridges",
		"groups": []map[string]any{
			{"name": "alice", "country": "us", "pto_budget": 5},
			{"name": "bob", "pto_budget": 3, "holidays": []string{"2025-12-25"}},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out groupOptimizeResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Groups, 2)
	require.Len(t, out.Plans, 1)
	assert.Len(t, out.Plans[0].GroupAllocations, 2)
}

func TestServer_GroupOptimize_NoGroups(t *testing.T) {
	srv := newTestServer(nil)

	resp := postJSON(t, srv, "/api/groups/optimize", map[string]any{"year": 2025})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Holidays(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/holidays/us?year=2025", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Country  string `json:"country"`
		Year     int    `json:"year"`
		Holidays []struct {
			Date string `json:"date"`
			Name string `json:"name"`
		} `json:"holidays"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "us", out.Country)
	assert.Equal(t, 2025, out.Year)
	assert.NotEmpty(t, out.Holidays)
}

func TestServer_Holidays_Unknown(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/holidays/atlantis", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Plans_WithoutStore(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_DeletePlan(t *testing.T) {
	store := &memPlanStore{records: []db.PlanRecord{{ID: "p1", Year: 2025}}}
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/plans/p1", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, store.records)

	req = httptest.NewRequest(http.MethodDelete, "/api/plans/p1", nil)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
