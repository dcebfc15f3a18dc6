package db

import "context"

// Dashboard aggregates. Date windows are computed by the caller as
// YYYY-MM-DD strings; end is exclusive unless noted. Scope attribution goes
// through the linked emission factor, so unlinked measurements count toward
// totals but never toward a scope.

// ScopeEmissionsBetween sums calculated emissions for one scope over
// [start, end] inclusive.
func (s *Storage) ScopeEmissionsBetween(ctx context.Context, scope int, start, end string) (float64, error) {
	var total float64
	query := s.db.Rebind(`
        SELECT COALESCE(SUM(m.calculated_emissions), 0)
        FROM measurement m
        JOIN emission_factor f ON f.id = m.emission_factor_id
        WHERE f.scope = ? AND m.date >= ? AND m.date <= ?`)
	err := s.db.GetContext(ctx, &total, query, scope, start, end)
	return total, err
}

// EmissionsInWindow sums calculated emissions over [start, end) with an
// optional scope filter.
func (s *Storage) EmissionsInWindow(ctx context.Context, start, end string, scope *int) (float64, error) {
	var total float64
	if scope != nil {
		query := s.db.Rebind(`
            SELECT COALESCE(SUM(m.calculated_emissions), 0)
            FROM measurement m
            JOIN emission_factor f ON f.id = m.emission_factor_id
            WHERE f.scope = ? AND m.date >= ? AND m.date < ?`)
		err := s.db.GetContext(ctx, &total, query, *scope, start, end)
		return total, err
	}
	query := s.db.Rebind(`
        SELECT COALESCE(SUM(calculated_emissions), 0)
        FROM measurement WHERE date >= ? AND date < ?`)
	err := s.db.GetContext(ctx, &total, query, start, end)
	return total, err
}

// CategoryEmissionsBetween groups emission sums by measurement category over
// [start, end] inclusive. Empty categories and null sums are skipped.
func (s *Storage) CategoryEmissionsBetween(ctx context.Context, start, end string) (map[string]float64, error) {
	type row struct {
		Category  string   `db:"category"`
		Emissions *float64 `db:"emissions"`
	}
	rows := []row{}
	query := s.db.Rebind(`
        SELECT category, SUM(calculated_emissions) AS emissions
        FROM measurement
        WHERE date >= ? AND date <= ?
        GROUP BY category`)
	if err := s.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, r := range rows {
		if r.Category == "" || r.Emissions == nil {
			continue
		}
		out[r.Category] = *r.Emissions
	}
	return out, nil
}
