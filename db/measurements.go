package db

import (
	"context"
	"fmt"
	"strings"

	"esgreport/models"
)

type MeasurementFilter struct {
	Category  string
	Location  string
	StartDate string
	EndDate   string
	Year      int
	Month     int
	Pagination
}

// MeasurementsSummary aggregates stored emissions by scope and category.
// Scope attribution follows the linked factor; unlinked measurements land
// in the category breakdown only.
type MeasurementsSummary struct {
	TotalEmissions float64            `json:"total_emissions"`
	ScopeTotals    map[string]float64 `json:"scope_totals"`
	CategoryTotals map[string]float64 `json:"category_totals"`
	Count          int                `json:"count"`
}

func (s *Storage) CreateMeasurement(ctx context.Context, m *models.Measurement) error {
	if err := s.applyFactor(ctx, m); err != nil {
		return err
	}
	query := s.db.Rebind(`
        INSERT INTO measurement
            (date, location, category, sub_category, amount, unit,
             emission_factor_id, calculated_emissions, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		m.Date, m.Location, m.Category, m.SubCategory, m.Amount, m.Unit,
		m.EmissionFactorID, m.CalculatedEmissions, m.Notes).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (s *Storage) GetMeasurement(ctx context.Context, id int) (*models.Measurement, error) {
	m := &models.Measurement{}
	query := s.db.Rebind(`SELECT * FROM measurement WHERE id = ?`)
	if err := s.db.GetContext(ctx, m, query, id); err != nil {
		return nil, err
	}
	if err := s.attachFactorInfo(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Storage) UpdateMeasurement(ctx context.Context, m *models.Measurement) error {
	if err := s.applyFactor(ctx, m); err != nil {
		return err
	}
	query := s.db.Rebind(`
        UPDATE measurement
        SET date = ?, location = ?, category = ?, sub_category = ?,
            amount = ?, unit = ?, emission_factor_id = ?,
            calculated_emissions = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		m.Date, m.Location, m.Category, m.SubCategory, m.Amount, m.Unit,
		m.EmissionFactorID, m.CalculatedEmissions, m.Notes, m.ID)
	return err
}

func (s *Storage) DeleteMeasurement(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM measurement WHERE id = ?`), id)
	return err
}

func (s *Storage) GetMeasurements(ctx context.Context, f MeasurementFilter) ([]models.Measurement, int, error) {
	var where []string
	var args []interface{}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Location != "" {
		where = append(where, "location = ?")
		args = append(args, f.Location)
	}
	if f.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, f.EndDate)
	}
	if f.Year != 0 {
		where = append(where, "substr(date, 1, 4) = ?")
		args = append(args, fmt.Sprintf("%04d", f.Year))
	}
	if f.Month != 0 {
		where = append(where, "substr(date, 6, 2) = ?")
		args = append(args, fmt.Sprintf("%02d", f.Month))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM measurement" + filter)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	query := s.db.Rebind("SELECT * FROM measurement" + filter +
		" ORDER BY date DESC, id DESC LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	measurements := []models.Measurement{}
	if err := s.db.SelectContext(ctx, &measurements, query, args...); err != nil {
		return nil, 0, err
	}

	// Factor views are cached per factor; pages rarely touch more than a
	// handful of distinct factors.
	cache := map[int]*models.FactorInfo{}
	for i := range measurements {
		m := &measurements[i]
		if m.EmissionFactorID == nil {
			continue
		}
		info, ok := cache[*m.EmissionFactorID]
		if !ok {
			var err error
			info, err = s.FactorInfo(ctx, *m.EmissionFactorID)
			if err != nil {
				if isNoRows(err) {
					continue
				}
				return nil, 0, err
			}
			cache[*m.EmissionFactorID] = info
		}
		m.EmissionFactor = info
	}
	return measurements, total, nil
}

func (s *Storage) RecentMeasurements(ctx context.Context, limit int) ([]models.Measurement, error) {
	if limit < 1 {
		limit = 10
	}
	measurements := []models.Measurement{}
	query := s.db.Rebind(`
        SELECT * FROM measurement
        ORDER BY date DESC, id DESC LIMIT ?`)
	err := s.db.SelectContext(ctx, &measurements, query, limit)
	return measurements, err
}

func (s *Storage) MeasurementsSummary(ctx context.Context, f MeasurementFilter) (*MeasurementsSummary, error) {
	var where []string
	var args []interface{}

	if f.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, f.EndDate)
	}
	if f.Year != 0 {
		where = append(where, "substr(date, 1, 4) = ?")
		args = append(args, fmt.Sprintf("%04d", f.Year))
	}
	if f.Month != 0 {
		where = append(where, "substr(date, 6, 2) = ?")
		args = append(args, fmt.Sprintf("%02d", f.Month))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	type row struct {
		Category  string   `db:"category"`
		Amount    float64  `db:"amount"`
		Emissions *float64 `db:"calculated_emissions"`
		FactorID  *int     `db:"emission_factor_id"`
	}
	rows := []row{}
	query := s.db.Rebind(`
        SELECT category, amount, calculated_emissions, emission_factor_id
        FROM measurement` + filter)
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	summary := &MeasurementsSummary{
		ScopeTotals:    map[string]float64{"scope_1": 0, "scope_2": 0, "scope_3": 0},
		CategoryTotals: map[string]float64{},
		Count:          len(rows),
	}

	// Linked rows are recomputed against the current active revision value,
	// so the summary reflects an activation before any bulk recalculation.
	type factorView struct {
		scope int
		value float64
	}
	cache := map[int]*factorView{}
	for _, r := range rows {
		emissions := r.Emissions
		var fv *factorView
		if r.FactorID != nil {
			var ok bool
			fv, ok = cache[*r.FactorID]
			if !ok {
				fv = &factorView{}
				err := s.db.GetContext(ctx, &fv.scope,
					s.db.Rebind(`SELECT scope FROM emission_factor WHERE id = ?`), *r.FactorID)
				if err == nil {
					fv.value, err = s.ActiveFactorValue(ctx, *r.FactorID)
				}
				if err != nil {
					if !isNoRows(err) {
						return nil, err
					}
					fv = nil
				}
				cache[*r.FactorID] = fv
			}
			if fv != nil {
				e := r.Amount * fv.value
				emissions = &e
			}
		}
		if emissions == nil {
			continue
		}
		summary.TotalEmissions += *emissions
		summary.CategoryTotals[r.Category] += *emissions
		if fv != nil {
			summary.ScopeTotals[fmt.Sprintf("scope_%d", fv.scope)] += *emissions
		}
	}
	return summary, nil
}

// RecalculateEmissions recomputes calculated_emissions for every linked
// measurement against the current active factor values. Returns the number
// of rows updated.
func (s *Storage) RecalculateEmissions(ctx context.Context) (int, error) {
	type row struct {
		ID       int     `db:"id"`
		Amount   float64 `db:"amount"`
		FactorID int     `db:"emission_factor_id"`
	}
	rows := []row{}
	if err := s.db.SelectContext(ctx, &rows, `
        SELECT id, amount, emission_factor_id FROM measurement
        WHERE emission_factor_id IS NOT NULL`); err != nil {
		return 0, err
	}

	// Active values are resolved before the write transaction opens; sqlite
	// holds a single writer.
	valueCache := map[int]float64{}
	for _, r := range rows {
		if _, ok := valueCache[r.FactorID]; ok {
			continue
		}
		value, err := s.ActiveFactorValue(ctx, r.FactorID)
		if err != nil {
			if isNoRows(err) {
				continue
			}
			return 0, err
		}
		valueCache[r.FactorID] = value
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	update := tx.Rebind(`
        UPDATE measurement
        SET calculated_emissions = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)

	updated := 0
	for _, r := range rows {
		value, ok := valueCache[r.FactorID]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, update, r.Amount*value, r.ID); err != nil {
			return 0, err
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}

// applyFactor derives calculated_emissions before a write. A nil factor id
// clears the derived value.
func (s *Storage) applyFactor(ctx context.Context, m *models.Measurement) error {
	if m.EmissionFactorID == nil {
		m.CalculatedEmissions = nil
		return nil
	}
	value, err := s.ActiveFactorValue(ctx, *m.EmissionFactorID)
	if err != nil {
		return err
	}
	emissions := m.Amount * value
	m.CalculatedEmissions = &emissions
	return nil
}

func (s *Storage) attachFactorInfo(ctx context.Context, m *models.Measurement) error {
	if m.EmissionFactorID == nil {
		return nil
	}
	info, err := s.FactorInfo(ctx, *m.EmissionFactorID)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return err
	}
	m.EmissionFactor = info
	return nil
}

// MeasurementLocations lists distinct locations for filter dropdowns.
func (s *Storage) MeasurementLocations(ctx context.Context) ([]string, error) {
	locations := []string{}
	err := s.db.SelectContext(ctx, &locations,
		`SELECT DISTINCT location FROM measurement WHERE location <> '' ORDER BY location`)
	return locations, err
}
