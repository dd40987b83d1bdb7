package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

// CreateActivity создаёт активность. companyID == nil — глобальная,
// доступная для копирования новым компаниям. Шкала валидируется на
// уровне сервиса до записи.
func CreateActivity(ctx context.Context, database *sql.DB, companyID *uuid.UUID, name, description, unit string, tiers models.TierTable) (*models.Activity, error) {
	raw, err := json.Marshal(tiers)
	if err != nil {
		return nil, fmt.Errorf("сериализация шкалы: %w", err)
	}
	var a models.Activity
	err = database.QueryRowContext(ctx, `
INSERT INTO activities (company_id, name, description, unit, scoring_tiers, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)
RETURNING id, company_id, name, description, unit, scoring_tiers, is_active, created_at`,
		companyID, name, description, unit, raw).
		Scan(&a.ID, &a.CompanyID, &a.Name, &a.Description, &a.Unit, tierScanner{&a.Tiers}, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func GetActivityByID(ctx context.Context, database *sql.DB, id uuid.UUID) (*models.Activity, error) {
	var a models.Activity
	err := database.QueryRowContext(ctx, `
SELECT id, company_id, name, description, unit, scoring_tiers, is_active, created_at
FROM activities WHERE id = $1`, id).
		Scan(&a.ID, &a.CompanyID, &a.Name, &a.Description, &a.Unit, tierScanner{&a.Tiers}, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActiveActivities возвращает активный каталог компании
// (companyID == nil — глобальный каталог).
func ListActiveActivities(ctx context.Context, database *sql.DB, companyID *uuid.UUID) ([]models.Activity, error) {
	query := `
SELECT id, company_id, name, description, unit, scoring_tiers, is_active, created_at
FROM activities WHERE is_active = TRUE AND `
	var rows *sql.Rows
	var err error
	if companyID == nil {
		rows, err = database.QueryContext(ctx, query+`company_id IS NULL ORDER BY name`)
	} else {
		rows, err = database.QueryContext(ctx, query+`company_id = $1 ORDER BY name`, *companyID)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Description, &a.Unit, tierScanner{&a.Tiers}, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateActivityTiers заменяет шкалу активности.
func UpdateActivityTiers(ctx context.Context, database *sql.DB, id uuid.UUID, tiers models.TierTable) error {
	raw, err := json.Marshal(tiers)
	if err != nil {
		return fmt.Errorf("сериализация шкалы: %w", err)
	}
	res, err := database.ExecContext(ctx, `UPDATE activities SET scoring_tiers = $1 WHERE id = $2`, raw, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActivityActive скрывает активность из каталога или возвращает её.
// Исторические записи не трогаем.
func SetActivityActive(ctx context.Context, database *sql.DB, id uuid.UUID, active bool) error {
	res, err := database.ExecContext(ctx, `UPDATE activities SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// tierScanner разбирает JSONB со шкалой прямо в models.TierTable.
type tierScanner struct {
	dst *models.TierTable
}

func (s tierScanner) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s.dst)
	case string:
		return json.Unmarshal([]byte(v), s.dst)
	case nil:
		*s.dst = models.TierTable{}
		return nil
	default:
		return errors.New("scoring_tiers: неожиданный тип значения")
	}
}
