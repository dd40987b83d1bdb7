package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

// GetOrCreateCompetition возвращает соревнование компании за месяц month
// (уже нормализованный к первому числу), создавая его при необходимости.
// Гонку двух первых заявок разрешает уникальный индекс (company_id, year_month):
// проигравший вставку просто перечитывает существующую строку.
func GetOrCreateCompetition(ctx context.Context, database *sql.DB, companyID uuid.UUID, month time.Time, active bool) (*models.Competition, error) {
	var c models.Competition
	err := database.QueryRowContext(ctx, `
INSERT INTO monthly_competitions (company_id, year_month, is_active)
VALUES ($1, $2, $3)
ON CONFLICT ON CONSTRAINT monthly_competitions_company_month_uq DO NOTHING
RETURNING id, company_id, year_month, is_active, created_at`,
		companyID, month, active).
		Scan(&c.ID, &c.CompanyID, &c.YearMonth, &c.IsActive, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("создание соревнования: %w", err)
	}

	// запись уже есть — возвращаем её без изменений
	err = database.QueryRowContext(ctx, `
SELECT id, company_id, year_month, is_active, created_at
FROM monthly_competitions
WHERE company_id = $1 AND year_month = $2`, companyID, month).
		Scan(&c.ID, &c.CompanyID, &c.YearMonth, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("чтение соревнования после гонки вставки: %w", err)
	}
	return &c, nil
}

func GetCompetitionByID(ctx context.Context, database *sql.DB, id uuid.UUID) (*models.Competition, error) {
	var c models.Competition
	err := database.QueryRowContext(ctx, `
SELECT id, company_id, year_month, is_active, created_at
FROM monthly_competitions WHERE id = $1`, id).
		Scan(&c.ID, &c.CompanyID, &c.YearMonth, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCompetitions — соревнования компании, новые сверху.
func ListCompetitions(ctx context.Context, database *sql.DB, companyID uuid.UUID, limit int) ([]models.Competition, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := database.QueryContext(ctx, `
SELECT id, company_id, year_month, is_active, created_at
FROM monthly_competitions
WHERE company_id = $1
ORDER BY year_month DESC
LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Competition
	for rows.Next() {
		var c models.Competition
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.YearMonth, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CloseCompetition снимает флаг is_active. Повторное закрытие — no-op.
func CloseCompetition(ctx context.Context, database *sql.DB, id uuid.UUID) error {
	_, err := database.ExecContext(ctx, `
UPDATE monthly_competitions SET is_active = FALSE WHERE id = $1`, id)
	return err
}

// CloseElapsedCompetitions закрывает все соревнования за месяцы строго
// раньше month. Возвращает число закрытых.
func CloseElapsedCompetitions(ctx context.Context, database *sql.DB, month time.Time) (int64, error) {
	res, err := database.ExecContext(ctx, `
UPDATE monthly_competitions SET is_active = FALSE
WHERE is_active = TRUE AND year_month < $1`, month)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
