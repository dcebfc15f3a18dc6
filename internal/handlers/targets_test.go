package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"esgreport/models"
)

func TestCreateTarget(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Cut Scope 2","target_type":"emissions_reduction","baseline_value":1000,
        "baseline_year":2020,"target_value":500,"target_year":2030,"unit":"tCO2e","scope":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var target models.ESGTarget
	require.NoError(t, json.Unmarshal(env.Data, &target))
	require.Equal(t, 1, target.ID)
	require.Equal(t, "active", target.Status)
}

func TestCreateTargetAcceptsZeroBaselineValue(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Renewables Share","target_type":"percentage","baseline_value":0,
        "baseline_year":2020,"target_value":80,"target_year":2030,"unit":"%"}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var target models.ESGTarget
	require.NoError(t, json.Unmarshal(env.Data, &target))
	require.Equal(t, 0.0, target.BaselineValue)
}

func TestCreateTargetRejectsMissingBaselineValue(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Bad","target_type":"emissions_reduction",
        "baseline_year":2020,"target_value":500,"target_year":2030,"unit":"tCO2e"}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "baseline_value")
}

func TestCreateTargetRejectsTargetYearBeforeBaseline(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Bad","target_type":"emissions_reduction","baseline_value":1000,
        "baseline_year":2030,"target_value":500,"target_year":2020,"unit":"tCO2e"}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "target_year")
}

func TestCreateTargetRejectsInvalidScope(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Bad","target_type":"emissions_reduction","baseline_value":1000,
        "baseline_year":2020,"target_value":500,"target_year":2030,"unit":"tCO2e","scope":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "scope")
}

func TestCreateTargetRejectsMissingName(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"target_type":"emissions_reduction","baseline_value":1000,
        "baseline_year":2020,"target_value":500,"target_year":2030,"unit":"tCO2e"}`
	req := httptest.NewRequest(http.MethodPost, "/api/targets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTargetHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "name")
}

func TestGetTargetStats(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/targets/stats", nil)
	rec := httptest.NewRecorder()

	h.GetTargetStatsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var stats struct {
		TotalTargets  int `json:"total_targets"`
		ActiveTargets int `json:"active_targets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Equal(t, 2, stats.TotalTargets)
	require.Equal(t, 1, stats.ActiveTargets)
}
