package db

import (
	"context"
	"strings"

	"esgreport/models"
)

type AssetFilter struct {
	AssetType string
	Status    string
	Location  string
	Search    string
	Pagination
}

// AssetSummary aggregates the asset register for the equipment dashboard.
type AssetSummary struct {
	TotalAssets     int            `json:"total_assets"`
	TypeCounts      map[string]int `json:"type_counts"`
	StatusCounts    map[string]int `json:"status_counts"`
	TotalAnnualKWh  float64        `json:"total_annual_kwh"`
	TotalAnnualCO2e float64        `json:"total_annual_co2e"`
}

func (s *Storage) CreateAsset(ctx context.Context, a *models.Asset) error {
	query := s.db.Rebind(`
        INSERT INTO asset
            (name, asset_type, model, manufacturer, serial_number, location,
             installation_date, capacity, capacity_unit, power_rating,
             efficiency_rating, annual_kwh, annual_co2e, maintenance_schedule,
             last_maintenance, next_maintenance, status, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		a.Name, a.AssetType, a.Model, a.Manufacturer, a.SerialNumber,
		a.Location, a.InstallationDate, a.Capacity, a.CapacityUnit,
		a.PowerRating, a.EfficiencyRating, a.AnnualKWh, a.AnnualCO2e,
		a.MaintenanceSchedule, a.LastMaintenance, a.NextMaintenance,
		a.Status, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Storage) GetAsset(ctx context.Context, id int) (*models.Asset, error) {
	a := &models.Asset{}
	query := s.db.Rebind(`SELECT * FROM asset WHERE id = ?`)
	err := s.db.GetContext(ctx, a, query, id)
	return a, err
}

func (s *Storage) UpdateAsset(ctx context.Context, a *models.Asset) error {
	query := s.db.Rebind(`
        UPDATE asset
        SET name = ?, asset_type = ?, model = ?, manufacturer = ?,
            serial_number = ?, location = ?, installation_date = ?,
            capacity = ?, capacity_unit = ?, power_rating = ?,
            efficiency_rating = ?, annual_kwh = ?, annual_co2e = ?,
            maintenance_schedule = ?, last_maintenance = ?,
            next_maintenance = ?, status = ?, notes = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		a.Name, a.AssetType, a.Model, a.Manufacturer, a.SerialNumber,
		a.Location, a.InstallationDate, a.Capacity, a.CapacityUnit,
		a.PowerRating, a.EfficiencyRating, a.AnnualKWh, a.AnnualCO2e,
		a.MaintenanceSchedule, a.LastMaintenance, a.NextMaintenance,
		a.Status, a.Notes, a.ID)
	return err
}

func (s *Storage) DeleteAsset(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM asset WHERE id = ?`), id)
	return err
}

func (s *Storage) GetAssets(ctx context.Context, f AssetFilter) ([]models.Asset, int, error) {
	var where []string
	var args []interface{}

	if f.AssetType != "" {
		where = append(where, "asset_type = ?")
		args = append(args, f.AssetType)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Location != "" {
		where = append(where, "location = ?")
		args = append(args, f.Location)
	}
	if f.Search != "" {
		where = append(where, "(name LIKE ? OR model LIKE ? OR manufacturer LIKE ? OR serial_number LIKE ?)")
		args = append(args, like(f.Search), like(f.Search), like(f.Search), like(f.Search))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM asset" + filter)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	query := s.db.Rebind("SELECT * FROM asset" + filter +
		" ORDER BY name ASC LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	assets := []models.Asset{}
	if err := s.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (s *Storage) AssetTypes(ctx context.Context) ([]string, error) {
	types := []string{}
	err := s.db.SelectContext(ctx, &types,
		`SELECT DISTINCT asset_type FROM asset WHERE asset_type <> '' ORDER BY asset_type`)
	return types, err
}

func (s *Storage) AssetSummary(ctx context.Context) (*AssetSummary, error) {
	summary := &AssetSummary{
		TypeCounts:   map[string]int{},
		StatusCounts: map[string]int{},
	}

	if err := s.db.GetContext(ctx, &summary.TotalAssets, `SELECT COUNT(*) FROM asset`); err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	var types []bucket
	if err := s.db.SelectContext(ctx, &types,
		`SELECT asset_type AS key, COUNT(*) AS count FROM asset
         WHERE asset_type <> '' GROUP BY asset_type`); err != nil {
		return nil, err
	}
	for _, b := range types {
		summary.TypeCounts[b.Key] = b.Count
	}

	var statuses []bucket
	if err := s.db.SelectContext(ctx, &statuses,
		`SELECT status AS key, COUNT(*) AS count FROM asset
         WHERE status <> '' GROUP BY status`); err != nil {
		return nil, err
	}
	for _, b := range statuses {
		summary.StatusCounts[b.Key] = b.Count
	}

	totals := struct {
		KWh  float64 `db:"kwh"`
		CO2e float64 `db:"co2e"`
	}{}
	if err := s.db.GetContext(ctx, &totals, `
        SELECT COALESCE(SUM(annual_kwh), 0) AS kwh,
               COALESCE(SUM(annual_co2e), 0) AS co2e
        FROM asset`); err != nil {
		return nil, err
	}
	summary.TotalAnnualKWh = totals.KWh
	summary.TotalAnnualCO2e = totals.CO2e

	return summary, nil
}
