package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/metrics"
	"github.com/velmark/fitness-contest/internal/models"
	"github.com/velmark/fitness-contest/internal/scoring"
)

// SubmitEntry принимает заявку пользователя: находит соревнование за месяц
// target, считает баллы по шкале активности и перезаписывает запись по ключу
// (пользователь, активность, соревнование). Баллы всегда выводятся из
// значения — клиент их не присылает.
func SubmitEntry(ctx context.Context, database *sql.DB, user models.User, activityID uuid.UUID, target time.Time, value float64, now time.Time) (*models.Entry, error) {
	entry, err := submitEntry(ctx, database, user, activityID, target, value, now)
	if err != nil {
		metrics.SubmissionErrors.WithLabelValues(errReason(err)).Inc()
		return nil, err
	}
	metrics.Submissions.Inc()
	return entry, nil
}

func submitEntry(ctx context.Context, database *sql.DB, user models.User, activityID uuid.UUID, target time.Time, value float64, now time.Time) (*models.Entry, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidValue, value)
	}

	activity, err := db.GetActivityByID(ctx, database, activityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownActivity, activityID)
		}
		return nil, err
	}
	// чужая или скрытая активность недоступна для новых записей
	if activity.CompanyID != nil && *activity.CompanyID != user.CompanyID {
		return nil, fmt.Errorf("%w: активность другой компании", models.ErrForbidden)
	}
	if !activity.IsActive {
		return nil, fmt.Errorf("%w: активность скрыта из каталога", models.ErrForbidden)
	}

	competition, err := ResolveCompetition(ctx, database, user.CompanyID, target, now)
	if err != nil {
		return nil, err
	}
	if Classify(competition, now) != PeriodCurrent || !competition.IsActive {
		return nil, fmt.Errorf("%w: %s", models.ErrPeriodClosed, competition.YearMonth.Format("2006-01"))
	}

	points, err := scoring.Score(activity.Tiers, value)
	if err != nil {
		return nil, err
	}
	return db.UpsertEntry(ctx, database, user.ID, activity.ID, competition.ID, value, points)
}

func errReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, models.ErrUnknownActivity):
		return "unknown_activity"
	case errors.Is(err, models.ErrMisconfiguredTiers):
		return "misconfigured_tiers"
	case errors.Is(err, models.ErrPeriodClosed):
		return "period_closed"
	case errors.Is(err, models.ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}
