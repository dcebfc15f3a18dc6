package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"esgreport/db"
	"esgreport/internal/handlers/testutils"
	"esgreport/models"
)

func TestCreateEmissionFactorValidation(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"scope":2,"category":"Electricity","factor_value":0.5,"unit":"kg","source":"DEFRA","effective_date":"2025-01-01"}`, "name"},
		{"bad scope", `{"name":"x","scope":5,"category":"Electricity","factor_value":0.5,"unit":"kg","source":"DEFRA","effective_date":"2025-01-01"}`, "scope"},
		{"missing unit", `{"name":"x","scope":2,"category":"Electricity","factor_value":0.5,"source":"DEFRA","effective_date":"2025-01-01"}`, "unit"},
		{"bad date", `{"name":"x","scope":2,"category":"Electricity","factor_value":0.5,"unit":"kg","source":"DEFRA","effective_date":"Jan 1"}`, "effective_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/emission-factors", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.CreateEmissionFactorHandler(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			require.Contains(t, env.Error, tc.want)
		})
	}
}

func TestCreateEmissionFactorAcceptsZeroValue(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"Green Tariff","scope":2,"category":"Electricity","factor_value":0,"unit":"kgCO2e/kWh","source":"DEFRA","effective_date":"2025-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emission-factors", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateEmissionFactorHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var factor models.EmissionFactor
	require.NoError(t, json.Unmarshal(env.Data, &factor))
	require.Equal(t, 0.0, factor.FactorValue)
}

func TestCreateEmissionFactorRejectsMissingValue(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"name":"x","scope":2,"category":"Electricity","unit":"kg","source":"DEFRA","effective_date":"2025-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emission-factors", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateEmissionFactorHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "factor_value")
}

func TestCreateFactorRevisionInheritsFactorValues(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	// Only the value changes; the rest comes from the parent factor.
	body := `{"factor_value":0.45,"revision_notes":"2026 grid mix"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emission-factors/1/revisions", strings.NewReader(body))
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	h.CreateFactorRevisionHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var rev models.EmissionFactorRevision
	require.NoError(t, json.Unmarshal(env.Data, &rev))
	require.Equal(t, "Grid Electricity", rev.Name)
	require.Equal(t, 0.45, rev.FactorValue)
	require.Equal(t, 2, rev.Version)
	require.False(t, rev.IsActive)
}

func TestDeleteActiveRevisionRejected(t *testing.T) {
	store := &MockStorage{
		DeleteFactorRevFunc: func(ctx context.Context, factorID, revisionID int) error {
			return db.ErrActiveRevision
		},
	}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/emission-factors/revisions/1", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	h.DeleteFactorRevisionHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "active revision")
}

func TestGetEmissionFactorsMeta(t *testing.T) {
	store := &MockStorage{
		GetEmissionFactorsFunc: func(ctx context.Context, f db.FactorFilter) ([]models.EmissionFactor, int, error) {
			return []models.EmissionFactor{{ID: 1}}, 45, nil
		},
	}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/emission-factors?page=2&per_page=20", nil)
	rec := httptest.NewRecorder()

	h.GetEmissionFactorsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var meta struct {
		Page    int `json:"page"`
		PerPage int `json:"per_page"`
		Total   int `json:"total"`
		Pages   int `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 20, meta.PerPage)
	require.Equal(t, 45, meta.Total)
	require.Equal(t, 3, meta.Pages)
}
