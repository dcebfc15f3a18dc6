package db

import (
	"context"
	"strings"

	"esgreport/models"
)

type FactorFilter struct {
	Scope       int
	Category    string
	SubCategory string
	Search      string
	Pagination
}

func (s *Storage) CreateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error {
	query := s.db.Rebind(`
        INSERT INTO emission_factor
            (name, scope, category, sub_category, factor_value, unit, source,
             effective_date, description, link)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		f.Name, f.Scope, f.Category, f.SubCategory, f.FactorValue, f.Unit,
		f.Source, f.EffectiveDate, f.Description, f.Link).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (s *Storage) GetEmissionFactor(ctx context.Context, id int) (*models.EmissionFactor, error) {
	f := &models.EmissionFactor{}
	query := s.db.Rebind(`SELECT * FROM emission_factor WHERE id = ?`)
	err := s.db.GetContext(ctx, f, query, id)
	return f, err
}

func (s *Storage) UpdateEmissionFactor(ctx context.Context, f *models.EmissionFactor) error {
	query := s.db.Rebind(`
        UPDATE emission_factor
        SET name = ?, scope = ?, category = ?, sub_category = ?,
            factor_value = ?, unit = ?, source = ?, effective_date = ?,
            description = ?, link = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		f.Name, f.Scope, f.Category, f.SubCategory, f.FactorValue, f.Unit,
		f.Source, f.EffectiveDate, f.Description, f.Link, f.ID)
	return err
}

// DeleteEmissionFactor removes the factor and its revisions. Measurements
// that reference it keep their stored calculated_emissions but lose the link.
func (s *Storage) DeleteEmissionFactor(ctx context.Context, id int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM emission_factor_revision WHERE parent_factor_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE measurement SET emission_factor_id = NULL WHERE emission_factor_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM emission_factor WHERE id = ?`), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetEmissionFactors(ctx context.Context, f FactorFilter) ([]models.EmissionFactor, int, error) {
	var where []string
	var args []interface{}

	if f.Scope != 0 {
		where = append(where, "scope = ?")
		args = append(args, f.Scope)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.SubCategory != "" {
		where = append(where, "sub_category = ?")
		args = append(args, f.SubCategory)
	}
	if f.Search != "" {
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		args = append(args, like(f.Search), like(f.Search))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM emission_factor" + filter)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	query := s.db.Rebind("SELECT * FROM emission_factor" + filter +
		" ORDER BY scope ASC, category ASC, name ASC LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	factors := []models.EmissionFactor{}
	if err := s.db.SelectContext(ctx, &factors, query, args...); err != nil {
		return nil, 0, err
	}
	return factors, total, nil
}

func (s *Storage) FactorCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.SelectContext(ctx, &categories,
		`SELECT DISTINCT category FROM emission_factor WHERE category <> '' ORDER BY category`)
	return categories, err
}

func (s *Storage) FactorSubCategories(ctx context.Context, category string) ([]string, error) {
	subs := []string{}
	query := s.db.Rebind(`
        SELECT DISTINCT sub_category FROM emission_factor
        WHERE category = ? AND sub_category <> ''
        ORDER BY sub_category`)
	err := s.db.SelectContext(ctx, &subs, query, category)
	return subs, err
}

func (s *Storage) GetFactorRevisions(ctx context.Context, factorID int) ([]models.EmissionFactorRevision, error) {
	revs := []models.EmissionFactorRevision{}
	query := s.db.Rebind(`
        SELECT * FROM emission_factor_revision
        WHERE parent_factor_id = ?
        ORDER BY version DESC`)
	err := s.db.SelectContext(ctx, &revs, query, factorID)
	return revs, err
}

func (s *Storage) GetFactorRevision(ctx context.Context, id int) (*models.EmissionFactorRevision, error) {
	rev := &models.EmissionFactorRevision{}
	query := s.db.Rebind(`SELECT * FROM emission_factor_revision WHERE id = ?`)
	err := s.db.GetContext(ctx, rev, query, id)
	return rev, err
}

// CreateFactorRevision assigns the next version number for the parent factor.
// New revisions start inactive; activation is a separate call.
func (s *Storage) CreateFactorRevision(ctx context.Context, rev *models.EmissionFactorRevision) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Confirms the parent exists; surfaces sql.ErrNoRows otherwise.
	var parentID int
	if err := tx.GetContext(ctx, &parentID, tx.Rebind(`SELECT id FROM emission_factor WHERE id = ?`), rev.ParentFactorID); err != nil {
		return err
	}

	if err := tx.GetContext(ctx, &rev.Version, tx.Rebind(`
        SELECT COALESCE(MAX(version), 0) + 1 FROM emission_factor_revision
        WHERE parent_factor_id = ?`), rev.ParentFactorID); err != nil {
		return err
	}

	rev.IsActive = false
	insert := tx.Rebind(`
        INSERT INTO emission_factor_revision
            (parent_factor_id, name, scope, category, sub_category,
             factor_value, unit, source, effective_date, description, link,
             revision_notes, version, is_active, created_by)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at`)
	if err := tx.QueryRowContext(ctx, insert,
		rev.ParentFactorID, rev.Name, rev.Scope, rev.Category, rev.SubCategory,
		rev.FactorValue, rev.Unit, rev.Source, rev.EffectiveDate,
		rev.Description, rev.Link, rev.RevisionNotes, rev.Version,
		rev.IsActive, rev.CreatedBy).
		Scan(&rev.ID, &rev.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// ActivateFactorRevision makes one revision the active value for its factor
// and deactivates the rest in a single statement.
func (s *Storage) ActivateFactorRevision(ctx context.Context, factorID, revisionID int) error {
	rev := &models.EmissionFactorRevision{}
	query := s.db.Rebind(`
        SELECT * FROM emission_factor_revision
        WHERE id = ? AND parent_factor_id = ?`)
	if err := s.db.GetContext(ctx, rev, query, revisionID, factorID); err != nil {
		return err
	}

	update := s.db.Rebind(`
        UPDATE emission_factor_revision
        SET is_active = CASE WHEN id = ? THEN TRUE ELSE FALSE END
        WHERE parent_factor_id = ?`)
	_, err := s.db.ExecContext(ctx, update, revisionID, factorID)
	return err
}

func (s *Storage) DeleteFactorRevision(ctx context.Context, factorID, revisionID int) error {
	rev := &models.EmissionFactorRevision{}
	query := s.db.Rebind(`
        SELECT * FROM emission_factor_revision
        WHERE id = ? AND parent_factor_id = ?`)
	if err := s.db.GetContext(ctx, rev, query, revisionID, factorID); err != nil {
		return err
	}
	if rev.IsActive {
		return ErrActiveRevision
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM emission_factor_revision WHERE id = ?`), revisionID)
	return err
}

// ActiveFactorValue returns the value measurements should be calculated
// with: the active revision's factor_value when one exists, otherwise the
// base factor's.
func (s *Storage) ActiveFactorValue(ctx context.Context, factorID int) (float64, error) {
	var value float64
	query := s.db.Rebind(`
        SELECT COALESCE(
            (SELECT factor_value FROM emission_factor_revision
             WHERE parent_factor_id = ? AND is_active = TRUE),
            factor_value)
        FROM emission_factor WHERE id = ?`)
	err := s.db.GetContext(ctx, &value, query, factorID, factorID)
	return value, err
}

// FactorInfo builds the embedded factor view for measurement responses.
func (s *Storage) FactorInfo(ctx context.Context, factorID int) (*models.FactorInfo, error) {
	factor, err := s.GetEmissionFactor(ctx, factorID)
	if err != nil {
		return nil, err
	}

	info := &models.FactorInfo{
		ID:          factor.ID,
		Name:        factor.Name,
		Category:    factor.Category,
		SubCategory: factor.SubCategory,
		FactorValue: factor.FactorValue,
		Unit:        factor.Unit,
		Source:      factor.Source,
	}

	if err := s.db.GetContext(ctx, &info.RevisionCount, s.db.Rebind(`
        SELECT COUNT(*) FROM emission_factor_revision
        WHERE parent_factor_id = ?`), factorID); err != nil {
		return nil, err
	}

	active := struct {
		Version     int     `db:"version"`
		FactorValue float64 `db:"factor_value"`
	}{}
	err = s.db.GetContext(ctx, &active, s.db.Rebind(`
        SELECT version, factor_value FROM emission_factor_revision
        WHERE parent_factor_id = ? AND is_active = TRUE`), factorID)
	if err == nil {
		info.CurrentRevision = active.Version
		info.FactorValue = active.FactorValue
		info.IsUsingRevision = true
	} else if !isNoRows(err) {
		return nil, err
	}

	return info, nil
}
