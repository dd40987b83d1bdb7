package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/models"
)

// PeriodClass — классификация соревнования относительно «сейчас».
type PeriodClass int

const (
	PeriodCurrent PeriodClass = iota
	PeriodHistorical
)

// NormalizeMonth приводит момент к первому числу его месяца, 00:00.
func NormalizeMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Classify сравнивает месяц соревнования с месяцем now. «Сейчас» передаётся
// параметром, а не берётся из системных часов: границы месяца проверяются
// детерминированно.
func Classify(c *models.Competition, now time.Time) PeriodClass {
	cy, cm, _ := c.YearMonth.Date()
	ny, nm, _ := now.Date()
	if cy == ny && cm == nm {
		return PeriodCurrent
	}
	return PeriodHistorical
}

// ResolveCompetition находит или лениво создаёт соревнование компании за
// месяц target. Созданное соревнование активно, только если target —
// текущий месяц. Повторные и параллельные вызовы возвращают одну и ту же
// запись.
func ResolveCompetition(ctx context.Context, database *sql.DB, companyID uuid.UUID, target, now time.Time) (*models.Competition, error) {
	month := NormalizeMonth(target)
	active := NormalizeMonth(now).Equal(month)
	return db.GetOrCreateCompetition(ctx, database, companyID, month, active)
}

// CloseCompetition закрывает соревнование. Требует права администратора
// той же компании. Повторное закрытие — no-op.
func CloseCompetition(ctx context.Context, database *sql.DB, actor models.User, competitionID uuid.UUID) error {
	c, err := db.GetCompetitionByID(ctx, database, competitionID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin || actor.CompanyID != c.CompanyID {
		return models.ErrForbidden
	}
	return db.CloseCompetition(ctx, database, competitionID)
}
