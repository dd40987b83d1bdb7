package db

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

// CreateCompany создаёт компанию с уникальным кодом приглашения и копирует
// ей глобальный каталог активностей.
func CreateCompany(ctx context.Context, database *sql.DB, name string) (*models.Company, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var c models.Company
	// при коллизии кода пробуем ещё раз; 36^6 вариантов, дубль — редкость
	for attempt := 0; ; attempt++ {
		code, err := newCompanyCode()
		if err != nil {
			return nil, err
		}
		err = tx.QueryRowContext(ctx, `
INSERT INTO companies (name, company_code) VALUES ($1, $2)
ON CONFLICT (company_code) DO NOTHING
RETURNING id, name, company_code, created_at`, name, code).
			Scan(&c.ID, &c.Name, &c.CompanyCode, &c.CreatedAt)
		if err == nil {
			break
		}
		if err != sql.ErrNoRows || attempt >= 5 {
			return nil, fmt.Errorf("создание компании: %w", err)
		}
	}

	if err := copyGlobalActivitiesTx(ctx, tx, c.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &c, nil
}

// copyGlobalActivitiesTx копирует активные глобальные активности в каталог компании.
func copyGlobalActivitiesTx(ctx context.Context, tx *sql.Tx, companyID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO activities (company_id, name, description, unit, scoring_tiers, is_active)
SELECT $1, name, description, unit, scoring_tiers, TRUE
FROM activities
WHERE company_id IS NULL AND is_active = TRUE
ON CONFLICT DO NOTHING`, companyID)
	if err != nil {
		return fmt.Errorf("копирование глобальных активностей: %w", err)
	}
	return nil
}

func GetCompanyByID(ctx context.Context, database *sql.DB, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := database.QueryRowContext(ctx, `
SELECT id, name, company_code, created_at FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CompanyCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCompanyByCode(ctx context.Context, database *sql.DB, code string) (*models.Company, error) {
	var c models.Company
	err := database.QueryRowContext(ctx, `
SELECT id, name, company_code, created_at FROM companies WHERE company_code = $1`,
		strings.ToUpper(strings.TrimSpace(code))).
		Scan(&c.ID, &c.Name, &c.CompanyCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newCompanyCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, x := range buf {
		b.WriteByte(codeAlphabet[int(x)%len(codeAlphabet)])
	}
	return b.String(), nil
}
