package db

import (
	"context"

	"esgreport/models"
)

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := s.db.Rebind(`
        INSERT INTO app_user
            (username, email, password_hash, first_name, last_name, phone,
             department, job_title, role, is_active)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`)
	return s.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.Department, u.JobTitle, u.Role, u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := s.db.Rebind(`SELECT * FROM app_user WHERE id = ?`)
	err := s.db.GetContext(ctx, u, query, id)
	return u, err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	query := s.db.Rebind(`SELECT * FROM app_user WHERE username = ?`)
	err := s.db.GetContext(ctx, u, query, username)
	return u, err
}

func (s *Storage) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT * FROM app_user ORDER BY username ASC`)
	return users, err
}

func (s *Storage) UpdateUser(ctx context.Context, u *models.User) error {
	query := s.db.Rebind(`
        UPDATE app_user
        SET username = ?, email = ?, password_hash = ?, first_name = ?,
            last_name = ?, phone = ?, department = ?, job_title = ?,
            role = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.Department, u.JobTitle, u.Role, u.IsActive, u.ID)
	return err
}

func (s *Storage) SetUserActive(ctx context.Context, id int, active bool) error {
	query := s.db.Rebind(`
        UPDATE app_user
        SET is_active = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query, active, id)
	return err
}

func (s *Storage) TouchLastLogin(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
        UPDATE app_user SET last_login = CURRENT_TIMESTAMP WHERE id = ?`), id)
	return err
}

// UserExists reports whether another user already holds the username or
// email. excludeID ignores one row, for updates; pass 0 on create.
func (s *Storage) UserExists(ctx context.Context, username, email string, excludeID int) (bool, error) {
	var count int
	query := s.db.Rebind(`
        SELECT COUNT(*) FROM app_user
        WHERE (username = ? OR email = ?) AND id <> ?`)
	err := s.db.GetContext(ctx, &count, query, username, email, excludeID)
	return count > 0, err
}
