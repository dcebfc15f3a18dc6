package db

import (
	"context"
	"strings"
	"time"

	"esgreport/models"
)

type SupplierFilter struct {
	Industry  string
	ESGRating string
	Status    string
	Search    string
	Pagination
}

// SupplierSummary is the grouped dashboard view over all suppliers.
type SupplierSummary struct {
	TotalSuppliers      int            `json:"total_suppliers"`
	StatusCounts        map[string]int `json:"status_counts"`
	RatingCounts        map[string]int `json:"rating_counts"`
	AverageCompleteness float64        `json:"average_completeness"`
	IndustryCounts      map[string]int `json:"industry_counts"`
}

func (s *Storage) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	query := s.db.Rebind(`
        INSERT INTO supplier
            (company_name, industry, contact_person, email, phone, esg_rating,
             data_completeness, last_updated, status, priority_level,
             scope3_categories, annual_spend, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		sup.CompanyName, sup.Industry, sup.ContactPerson, sup.Email, sup.Phone,
		sup.ESGRating, sup.DataCompleteness, sup.LastUpdated, sup.Status,
		sup.PriorityLevel, sup.Scope3Categories, sup.AnnualSpend, sup.Notes).
		Scan(&sup.ID, &sup.CreatedAt, &sup.UpdatedAt)
}

func (s *Storage) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	sup := &models.Supplier{}
	query := s.db.Rebind(`SELECT * FROM supplier WHERE id = ?`)
	err := s.db.GetContext(ctx, sup, query, id)
	return sup, err
}

func (s *Storage) UpdateSupplier(ctx context.Context, sup *models.Supplier) error {
	query := s.db.Rebind(`
        UPDATE supplier
        SET company_name = ?, industry = ?, contact_person = ?, email = ?,
            phone = ?, esg_rating = ?, data_completeness = ?, last_updated = ?,
            status = ?, priority_level = ?, scope3_categories = ?,
            annual_spend = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		sup.CompanyName, sup.Industry, sup.ContactPerson, sup.Email, sup.Phone,
		sup.ESGRating, sup.DataCompleteness, sup.LastUpdated, sup.Status,
		sup.PriorityLevel, sup.Scope3Categories, sup.AnnualSpend, sup.Notes,
		sup.ID)
	return err
}

// DeleteSupplier removes the supplier together with its submitted data rows.
func (s *Storage) DeleteSupplier(ctx context.Context, id int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM supplier_data WHERE supplier_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM supplier WHERE id = ?`), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetSuppliers(ctx context.Context, f SupplierFilter) ([]models.Supplier, int, error) {
	var where []string
	var args []interface{}

	if f.Industry != "" {
		where = append(where, "industry = ?")
		args = append(args, f.Industry)
	}
	if f.ESGRating != "" {
		where = append(where, "esg_rating = ?")
		args = append(args, f.ESGRating)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		where = append(where, "(company_name LIKE ? OR contact_person LIKE ?)")
		args = append(args, like(f.Search), like(f.Search))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM supplier" + filter)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	query := s.db.Rebind("SELECT * FROM supplier" + filter +
		" ORDER BY company_name ASC LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	suppliers := []models.Supplier{}
	if err := s.db.SelectContext(ctx, &suppliers, query, args...); err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

// CreateSupplierData inserts a data point and recomputes the owning
// supplier's completeness score (min(100, 10 x entry count)) in the same
// transaction. The new score is returned.
func (s *Storage) CreateSupplierData(ctx context.Context, d *models.SupplierData) (float64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Confirms the supplier exists; surfaces sql.ErrNoRows otherwise.
	var supplierID int
	if err := tx.GetContext(ctx, &supplierID, tx.Rebind(`SELECT id FROM supplier WHERE id = ?`), d.SupplierID); err != nil {
		return 0, err
	}

	insert := tx.Rebind(`
        INSERT INTO supplier_data
            (supplier_id, data_type, scope3_category, value, unit,
             reporting_period, data_quality, verification_status, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	if err := tx.QueryRowContext(ctx, insert,
		d.SupplierID, d.DataType, d.Scope3Category, d.Value, d.Unit,
		d.ReportingPeriod, d.DataQuality, d.VerificationStatus, d.Notes).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return 0, err
	}

	var entries int
	if err := tx.GetContext(ctx, &entries, tx.Rebind(`SELECT COUNT(*) FROM supplier_data WHERE supplier_id = ?`), d.SupplierID); err != nil {
		return 0, err
	}

	completeness := float64(entries * 10)
	if completeness > 100 {
		completeness = 100
	}

	update := tx.Rebind(`
        UPDATE supplier
        SET data_completeness = ?, last_updated = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, update,
		completeness, time.Now().UTC().Format("2006-01-02"), d.SupplierID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return completeness, nil
}

func (s *Storage) GetSupplierData(ctx context.Context, supplierID int) ([]models.SupplierData, error) {
	data := []models.SupplierData{}
	query := s.db.Rebind(`
        SELECT * FROM supplier_data
        WHERE supplier_id = ?
        ORDER BY created_at DESC`)
	err := s.db.SelectContext(ctx, &data, query, supplierID)
	return data, err
}

func (s *Storage) SupplierSummary(ctx context.Context) (*SupplierSummary, error) {
	summary := &SupplierSummary{
		StatusCounts:   map[string]int{"pending": 0, "complete": 0, "overdue": 0},
		RatingCounts:   map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0},
		IndustryCounts: map[string]int{},
	}

	if err := s.db.GetContext(ctx, &summary.TotalSuppliers, `SELECT COUNT(*) FROM supplier`); err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	var statuses []bucket
	if err := s.db.SelectContext(ctx, &statuses,
		`SELECT status AS key, COUNT(*) AS count FROM supplier GROUP BY status`); err != nil {
		return nil, err
	}
	for _, b := range statuses {
		summary.StatusCounts[b.Key] = b.Count
	}

	var ratings []bucket
	if err := s.db.SelectContext(ctx, &ratings,
		`SELECT esg_rating AS key, COUNT(*) AS count FROM supplier
         WHERE esg_rating IN ('A', 'B', 'C', 'D', 'F') GROUP BY esg_rating`); err != nil {
		return nil, err
	}
	for _, b := range ratings {
		summary.RatingCounts[b.Key] = b.Count
	}

	if err := s.db.GetContext(ctx, &summary.AverageCompleteness,
		`SELECT COALESCE(AVG(data_completeness), 0) FROM supplier`); err != nil {
		return nil, err
	}

	var industries []bucket
	if err := s.db.SelectContext(ctx, &industries,
		`SELECT industry AS key, COUNT(*) AS count FROM supplier
         WHERE industry <> '' GROUP BY industry`); err != nil {
		return nil, err
	}
	for _, b := range industries {
		summary.IndustryCounts[b.Key] = b.Count
	}

	return summary, nil
}
