package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"esgreport/internal/handlers/testutils"
	"esgreport/models"
)

func TestCreateMeasurementComputesEmissions(t *testing.T) {
	store := &MockStorage{
		CreateMeasurementFunc: func(ctx context.Context, m *models.Measurement) error {
			m.ID = 1
			if m.EmissionFactorID != nil {
				emissions := m.Amount * 0.5
				m.CalculatedEmissions = &emissions
			}
			return nil
		},
	}
	h := newTestHandler(store)

	body := `{"date":"2025-03-10","category":"Electricity","amount":100,"unit":"kWh","emission_factor_id":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var m models.Measurement
	require.NoError(t, json.Unmarshal(env.Data, &m))
	require.NotNil(t, m.CalculatedEmissions)
	require.Equal(t, 50.0, *m.CalculatedEmissions)
}

func TestCreateMeasurementWithoutFactorLeavesEmissionsNull(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"date":"2025-03-10","category":"Waste","amount":10,"unit":"kg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var m models.Measurement
	require.NoError(t, json.Unmarshal(env.Data, &m))
	require.Nil(t, m.CalculatedEmissions)
}

func TestCreateMeasurementAcceptsZeroAmount(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"date":"2025-03-10","category":"Electricity","amount":0,"unit":"kWh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)

	var m models.Measurement
	require.NoError(t, json.Unmarshal(env.Data, &m))
	require.Equal(t, 0.0, m.Amount)
}

func TestCreateMeasurementRejectsMissingAmount(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"date":"2025-03-10","category":"Electricity","unit":"kWh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "amount")
}

func TestCreateMeasurementRejectsBadDate(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"date":"10/03/2025","category":"Electricity","amount":100,"unit":"kWh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "date")
}

func TestCreateMeasurementRejectsMissingCategory(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	body := `{"date":"2025-03-10","amount":100,"unit":"kWh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "category")
}

func TestCreateMeasurementUnknownFactorIs400(t *testing.T) {
	store := &MockStorage{
		CreateMeasurementFunc: func(ctx context.Context, m *models.Measurement) error {
			return sql.ErrNoRows
		},
	}
	h := newTestHandler(store)

	body := `{"date":"2025-03-10","category":"Electricity","amount":100,"unit":"kWh","emission_factor_id":999}`
	req := httptest.NewRequest(http.MethodPost, "/api/measurements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateMeasurementHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Error, "emission factor")
}

func TestGetMeasurementNotFound(t *testing.T) {
	store := &MockStorage{
		GetMeasurementFunc: func(ctx context.Context, id int) (*models.Measurement, error) {
			return nil, sql.ErrNoRows
		},
	}
	h := newTestHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/measurements/42", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.GetMeasurementHandler(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecalculateEmissionsReturnsCount(t *testing.T) {
	h := newTestHandler(&MockStorage{})

	req := httptest.NewRequest(http.MethodPost, "/api/measurements/recalculate", nil)
	rec := httptest.NewRecorder()

	h.RecalculateEmissionsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, 3, payload["updated"])
}
