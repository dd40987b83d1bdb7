package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/models"
	"github.com/velmark/fitness-contest/internal/scoring"
)

// Административные операции. Право определяется явным флагом is_admin
// на учётной записи, а не выводится из формы объекта.

// CreateActivity добавляет активность в каталог компании администратора.
// Шкала проверяется до записи: дырявую или невозрастающую шкалу в БД
// не пускаем.
func CreateActivity(ctx context.Context, database *sql.DB, actor models.User, name, description, unit string, tiers models.TierTable) (*models.Activity, error) {
	if !actor.IsAdmin {
		return nil, models.ErrForbidden
	}
	if err := scoring.Validate(tiers); err != nil {
		return nil, err
	}
	return db.CreateActivity(ctx, database, &actor.CompanyID, name, description, unit, tiers)
}

// UpdateActivityTiers заменяет шкалу активности своей компании.
func UpdateActivityTiers(ctx context.Context, database *sql.DB, actor models.User, activityID uuid.UUID, tiers models.TierTable) error {
	if err := canModifyActivity(ctx, database, actor, activityID); err != nil {
		return err
	}
	if err := scoring.Validate(tiers); err != nil {
		return err
	}
	return db.UpdateActivityTiers(ctx, database, activityID, tiers)
}

// SetActivityActive скрывает активность из каталога или возвращает её.
// Исторические записи по скрытой активности остаются.
func SetActivityActive(ctx context.Context, database *sql.DB, actor models.User, activityID uuid.UUID, active bool) error {
	if err := canModifyActivity(ctx, database, actor, activityID); err != nil {
		return err
	}
	return db.SetActivityActive(ctx, database, activityID, active)
}

// SetUserAdmin меняет флаг администратора сотруднику своей компании.
func SetUserAdmin(ctx context.Context, database *sql.DB, actor models.User, userID uuid.UUID, isAdmin bool) error {
	if !actor.IsAdmin {
		return models.ErrForbidden
	}
	target, err := db.GetUserByID(ctx, database, userID)
	if err != nil {
		return err
	}
	if target.CompanyID != actor.CompanyID {
		return fmt.Errorf("%w: сотрудник другой компании", models.ErrForbidden)
	}
	return db.SetUserAdmin(ctx, database, userID, isAdmin)
}

// canModifyActivity: админ может менять только активности своей компании;
// глобальный каталог из приложения не редактируется.
func canModifyActivity(ctx context.Context, database *sql.DB, actor models.User, activityID uuid.UUID) error {
	if !actor.IsAdmin {
		return models.ErrForbidden
	}
	a, err := db.GetActivityByID(ctx, database, activityID)
	if err != nil {
		return err
	}
	if a.CompanyID == nil || *a.CompanyID != actor.CompanyID {
		return fmt.Errorf("%w: активность вне компании администратора", models.ErrForbidden)
	}
	return nil
}
