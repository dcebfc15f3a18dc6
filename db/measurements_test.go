package db

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"esgreport/db/migrations"
	"esgreport/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	conn, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrations.Up(conn, "sqlite3"))
	return NewStorage(conn)
}

func seedFactor(t *testing.T, s *Storage, value float64) *models.EmissionFactor {
	t.Helper()
	f := &models.EmissionFactor{
		Name: "Grid Electricity", Scope: 2, Category: "Electricity",
		FactorValue: value, Unit: "kgCO2e/kWh", Source: "DEFRA",
		EffectiveDate: "2025-01-01",
	}
	require.NoError(t, s.CreateEmissionFactor(context.Background(), f))
	return f
}

func seedMeasurement(t *testing.T, s *Storage, date string, amount float64, factorID *int) *models.Measurement {
	t.Helper()
	m := &models.Measurement{
		Date: date, Category: "Electricity", Amount: amount, Unit: "kWh",
		EmissionFactorID: factorID,
	}
	require.NoError(t, s.CreateMeasurement(context.Background(), m))
	return m
}

func TestMeasurementsSummaryMonthFilter(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	f := seedFactor(t, s, 0.5)
	seedMeasurement(t, s, "2025-03-10", 10, &f.ID)
	seedMeasurement(t, s, "2025-04-10", 10, &f.ID)

	summary, err := s.MeasurementsSummary(ctx, MeasurementFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	require.Equal(t, 5.0, summary.TotalEmissions)
	require.Equal(t, 5.0, summary.ScopeTotals["scope_2"])
}

func TestMeasurementsSummaryUsesActiveRevisionValue(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	f := seedFactor(t, s, 0.5)
	m := seedMeasurement(t, s, "2025-03-10", 10, &f.ID)
	require.NotNil(t, m.CalculatedEmissions)
	require.Equal(t, 5.0, *m.CalculatedEmissions)

	rev := &models.EmissionFactorRevision{
		ParentFactorID: f.ID, Name: f.Name, Scope: f.Scope, Category: f.Category,
		FactorValue: 1.0, Unit: f.Unit, Source: f.Source, EffectiveDate: "2026-01-01",
	}
	require.NoError(t, s.CreateFactorRevision(ctx, rev))
	require.NoError(t, s.ActivateFactorRevision(ctx, f.ID, rev.ID))

	// No bulk recalculation between activation and the summary read; the
	// stored calculated_emissions column still holds the old value.
	summary, err := s.MeasurementsSummary(ctx, MeasurementFilter{})
	require.NoError(t, err)
	require.Equal(t, 10.0, summary.TotalEmissions)
	require.Equal(t, 10.0, summary.ScopeTotals["scope_2"])
}
