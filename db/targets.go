package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"esgreport/models"
)

type TargetFilter struct {
	TargetType string
	Scope      int
	Status     string
	Search     string
}

// TargetStats is the aggregate view behind GET /targets/stats.
type TargetStats struct {
	TotalTargets      int            `json:"total_targets"`
	ActiveTargets     int            `json:"active_targets"`
	CompletedTargets  int            `json:"completed_targets"`
	AverageProgress   float64        `json:"average_progress"`
	UpcomingDeadlines int            `json:"upcoming_deadlines"`
	TypeBreakdown     map[string]int `json:"type_breakdown"`
	ScopeBreakdown    map[string]int `json:"scope_breakdown"`
}

func (s *Storage) CreateTarget(ctx context.Context, t *models.ESGTarget) error {
	query := s.db.Rebind(`
        INSERT INTO esg_target
            (name, description, target_type, scope, baseline_value,
             baseline_year, target_value, target_year, unit, current_value,
             progress_percentage, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.TargetType, t.Scope, t.BaselineValue,
		t.BaselineYear, t.TargetValue, t.TargetYear, t.Unit, t.CurrentValue,
		t.ProgressPercentage, t.Status).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *Storage) GetTarget(ctx context.Context, id int) (*models.ESGTarget, error) {
	t := &models.ESGTarget{}
	query := s.db.Rebind(`SELECT * FROM esg_target WHERE id = ?`)
	err := s.db.GetContext(ctx, t, query, id)
	return t, err
}

func (s *Storage) UpdateTarget(ctx context.Context, t *models.ESGTarget) error {
	query := s.db.Rebind(`
        UPDATE esg_target
        SET name = ?, description = ?, target_type = ?, scope = ?,
            baseline_value = ?, baseline_year = ?, target_value = ?,
            target_year = ?, unit = ?, current_value = ?,
            progress_percentage = ?, status = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		t.Name, t.Description, t.TargetType, t.Scope, t.BaselineValue,
		t.BaselineYear, t.TargetValue, t.TargetYear, t.Unit, t.CurrentValue,
		t.ProgressPercentage, t.Status, t.ID)
	return err
}

func (s *Storage) DeleteTarget(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM esg_target WHERE id = ?`), id)
	return err
}

func (s *Storage) GetTargets(ctx context.Context, f TargetFilter) ([]models.ESGTarget, error) {
	var where []string
	var args []interface{}

	if f.TargetType != "" && f.TargetType != "all" {
		where = append(where, "target_type = ?")
		args = append(args, f.TargetType)
	}
	if f.Scope != 0 {
		where = append(where, "scope = ?")
		args = append(args, f.Scope)
	}
	if f.Status != "" && f.Status != "all" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		where = append(where, "(name LIKE ? OR description LIKE ?)")
		args = append(args, like(f.Search), like(f.Search))
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	targets := []models.ESGTarget{}
	query := s.db.Rebind("SELECT * FROM esg_target" + filter +
		" ORDER BY target_year ASC, name ASC")
	err := s.db.SelectContext(ctx, &targets, query, args...)
	return targets, err
}

// ActiveTargets lists targets in status 'active', the set the dashboard
// recomputes progress for.
func (s *Storage) ActiveTargets(ctx context.Context) ([]models.ESGTarget, error) {
	targets := []models.ESGTarget{}
	err := s.db.SelectContext(ctx, &targets,
		`SELECT * FROM esg_target WHERE status = 'active' ORDER BY target_year ASC, name ASC`)
	return targets, err
}

func (s *Storage) TargetStats(ctx context.Context) (*TargetStats, error) {
	stats := &TargetStats{
		TypeBreakdown:  map[string]int{},
		ScopeBreakdown: map[string]int{},
	}

	if err := s.db.GetContext(ctx, &stats.TotalTargets, `SELECT COUNT(*) FROM esg_target`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &stats.ActiveTargets,
		`SELECT COUNT(*) FROM esg_target WHERE status = 'active'`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &stats.CompletedTargets,
		`SELECT COUNT(*) FROM esg_target WHERE status = 'completed'`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &stats.AverageProgress,
		`SELECT COALESCE(AVG(progress_percentage), 0) FROM esg_target WHERE status = 'active'`); err != nil {
		return nil, err
	}

	type typeBucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	var types []typeBucket
	if err := s.db.SelectContext(ctx, &types,
		`SELECT target_type AS key, COUNT(*) AS count FROM esg_target GROUP BY target_type`); err != nil {
		return nil, err
	}
	for _, b := range types {
		stats.TypeBreakdown[b.Key] = b.Count
	}

	type scopeBucket struct {
		Scope int `db:"scope"`
		Count int `db:"count"`
	}
	var scopes []scopeBucket
	if err := s.db.SelectContext(ctx, &scopes,
		`SELECT scope, COUNT(*) AS count FROM esg_target
         WHERE scope IS NOT NULL GROUP BY scope`); err != nil {
		return nil, err
	}
	for _, b := range scopes {
		stats.ScopeBreakdown[fmt.Sprintf("Scope %d", b.Scope)] = b.Count
	}

	// Active targets due within the next calendar year.
	deadline := s.db.Rebind(`
        SELECT COUNT(*) FROM esg_target
        WHERE status = 'active' AND target_year <= ?`)
	if err := s.db.GetContext(ctx, &stats.UpcomingDeadlines, deadline, time.Now().Year()+1); err != nil {
		return nil, err
	}

	return stats, nil
}
