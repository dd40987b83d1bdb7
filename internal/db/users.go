package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

func CreateUser(ctx context.Context, database *sql.DB, email, fullName string, companyID uuid.UUID, isAdmin bool) (*models.User, error) {
	var u models.User
	err := database.QueryRowContext(ctx, `
INSERT INTO users (email, full_name, company_id, is_admin)
VALUES ($1, $2, $3, $4)
RETURNING id, email, full_name, company_id, is_admin, created_at`,
		strings.ToLower(strings.TrimSpace(email)), fullName, companyID, isAdmin).
		Scan(&u.ID, &u.Email, &u.FullName, &u.CompanyID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, database *sql.DB, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := database.QueryRowContext(ctx, `
SELECT id, email, full_name, company_id, is_admin, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.FullName, &u.CompanyID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByEmail(ctx context.Context, database *sql.DB, email string) (*models.User, error) {
	var u models.User
	err := database.QueryRowContext(ctx, `
SELECT id, email, full_name, company_id, is_admin, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Email, &u.FullName, &u.CompanyID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ListUsersByCompany(ctx context.Context, database *sql.DB, companyID uuid.UUID) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, email, full_name, company_id, is_admin, created_at
FROM users WHERE company_id = $1 ORDER BY full_name`, companyID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.CompanyID, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func SetUserAdmin(ctx context.Context, database *sql.DB, id uuid.UUID, isAdmin bool) error {
	res, err := database.ExecContext(ctx, `UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
