package db

import (
	"context"
	"strings"

	"esgreport/models"
)

type ProjectFilter struct {
	Year   int
	Status string
	Pagination
}

// ProjectStatistics summarizes the project portfolio.
type ProjectStatistics struct {
	TotalProjects     int            `json:"total_projects"`
	StatusCounts      map[string]int `json:"status_counts"`
	TotalActivities   int            `json:"total_activities"`
	AverageCompletion float64        `json:"average_completion"`
}

func (s *Storage) CreateProject(ctx context.Context, p *models.Project) error {
	query := s.db.Rebind(`
        INSERT INTO project
            (name, description, year, start_date, end_date, status,
             target_reduction_percentage, target_reduction_absolute,
             target_reduction_unit, baseline_value, baseline_year)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Year, p.StartDate, p.EndDate, p.Status,
		p.TargetReductionPercentage, p.TargetReductionAbsolute,
		p.TargetReductionUnit, p.BaselineValue, p.BaselineYear).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetProject embeds the project's activities ordered by due date.
func (s *Storage) GetProject(ctx context.Context, id int) (*models.Project, error) {
	p := &models.Project{}
	query := s.db.Rebind(`SELECT * FROM project WHERE id = ?`)
	if err := s.db.GetContext(ctx, p, query, id); err != nil {
		return nil, err
	}
	activities, err := s.GetProjectActivities(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Activities = activities
	return p, nil
}

func (s *Storage) UpdateProject(ctx context.Context, p *models.Project) error {
	query := s.db.Rebind(`
        UPDATE project
        SET name = ?, description = ?, year = ?, start_date = ?, end_date = ?,
            status = ?, target_reduction_percentage = ?,
            target_reduction_absolute = ?, target_reduction_unit = ?,
            baseline_value = ?, baseline_year = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Year, p.StartDate, p.EndDate, p.Status,
		p.TargetReductionPercentage, p.TargetReductionAbsolute,
		p.TargetReductionUnit, p.BaselineValue, p.BaselineYear, p.ID)
	return err
}

// DeleteProject removes the project with its activities.
func (s *Storage) DeleteProject(ctx context.Context, id int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM project_activity WHERE project_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM project WHERE id = ?`), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) GetProjects(ctx context.Context, f ProjectFilter) ([]models.Project, int, error) {
	var where []string
	var args []interface{}

	if f.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, f.Year)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := s.db.Rebind("SELECT COUNT(*) FROM project" + filter)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	query := s.db.Rebind("SELECT * FROM project" + filter +
		" ORDER BY year DESC, name ASC LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	projects := []models.Project{}
	if err := s.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *Storage) GetProjectActivities(ctx context.Context, projectID int) ([]models.ProjectActivity, error) {
	activities := []models.ProjectActivity{}
	query := s.db.Rebind(`
        SELECT * FROM project_activity
        WHERE project_id = ?
        ORDER BY due_date ASC, id ASC`)
	err := s.db.SelectContext(ctx, &activities, query, projectID)
	return activities, err
}

func (s *Storage) GetProjectActivity(ctx context.Context, projectID, activityID int) (*models.ProjectActivity, error) {
	a := &models.ProjectActivity{}
	query := s.db.Rebind(`
        SELECT * FROM project_activity
        WHERE id = ? AND project_id = ?`)
	err := s.db.GetContext(ctx, a, query, activityID, projectID)
	return a, err
}

func (s *Storage) CreateProjectActivity(ctx context.Context, a *models.ProjectActivity) error {
	// Confirms the project exists; surfaces sql.ErrNoRows otherwise.
	var projectID int
	if err := s.db.GetContext(ctx, &projectID, s.db.Rebind(`SELECT id FROM project WHERE id = ?`), a.ProjectID); err != nil {
		return err
	}

	query := s.db.Rebind(`
        INSERT INTO project_activity
            (project_id, description, due_date, start_date, end_date, status,
             completion_percentage, estimated_hours, actual_hours, risk_level,
             budget_allocated, budget_spent, emission_categories,
             measurement_ids, priority, assigned_to, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		a.ProjectID, a.Description, a.DueDate, a.StartDate, a.EndDate,
		a.Status, a.CompletionPercentage, a.EstimatedHours, a.ActualHours,
		a.RiskLevel, a.BudgetAllocated, a.BudgetSpent, a.EmissionCategories,
		a.MeasurementIDs, a.Priority, a.AssignedTo, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Storage) UpdateProjectActivity(ctx context.Context, a *models.ProjectActivity) error {
	query := s.db.Rebind(`
        UPDATE project_activity
        SET description = ?, due_date = ?, start_date = ?, end_date = ?,
            status = ?, completion_percentage = ?, estimated_hours = ?,
            actual_hours = ?, risk_level = ?, budget_allocated = ?,
            budget_spent = ?, emission_categories = ?, measurement_ids = ?,
            priority = ?, assigned_to = ?, notes = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ? AND project_id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		a.Description, a.DueDate, a.StartDate, a.EndDate, a.Status,
		a.CompletionPercentage, a.EstimatedHours, a.ActualHours, a.RiskLevel,
		a.BudgetAllocated, a.BudgetSpent, a.EmissionCategories,
		a.MeasurementIDs, a.Priority, a.AssignedTo, a.Notes,
		a.ID, a.ProjectID)
	return err
}

func (s *Storage) DeleteProjectActivity(ctx context.Context, projectID, activityID int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
        DELETE FROM project_activity WHERE id = ? AND project_id = ?`),
		activityID, projectID)
	return err
}

func (s *Storage) ProjectStatistics(ctx context.Context) (*ProjectStatistics, error) {
	stats := &ProjectStatistics{StatusCounts: map[string]int{}}

	if err := s.db.GetContext(ctx, &stats.TotalProjects, `SELECT COUNT(*) FROM project`); err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	var statuses []bucket
	if err := s.db.SelectContext(ctx, &statuses,
		`SELECT status AS key, COUNT(*) AS count FROM project
         WHERE status <> '' GROUP BY status`); err != nil {
		return nil, err
	}
	for _, b := range statuses {
		stats.StatusCounts[b.Key] = b.Count
	}

	if err := s.db.GetContext(ctx, &stats.TotalActivities, `SELECT COUNT(*) FROM project_activity`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &stats.AverageCompletion,
		`SELECT COALESCE(AVG(completion_percentage), 0) FROM project_activity`); err != nil {
		return nil, err
	}

	return stats, nil
}
