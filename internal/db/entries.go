package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

// UpsertEntry атомарно вставляет или перезаписывает запись по ключу
// (user_id, activity_id, competition_id). Значение и баллы перезаписываются,
// created_at сохраняется, updated_at обновляется. Дубликаты исключает
// уникальный индекс, параллельные записи — last-write-wins.
func UpsertEntry(ctx context.Context, database *sql.DB, userID, activityID, competitionID uuid.UUID, value float64, points int) (*models.Entry, error) {
	var e models.Entry
	err := database.QueryRowContext(ctx, `
INSERT INTO user_entries (user_id, activity_id, competition_id, value, points)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT ON CONSTRAINT user_entries_key_uq DO UPDATE
SET value = EXCLUDED.value, points = EXCLUDED.points, updated_at = now()
RETURNING id, user_id, activity_id, competition_id, value, points, created_at, updated_at`,
		userID, activityID, competitionID, value, points).
		Scan(&e.ID, &e.UserID, &e.ActivityID, &e.CompetitionID, &e.Value, &e.Points, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("запись результата: %w", err)
	}
	return &e, nil
}

// ListEntries — все записи соревнования, упорядоченные по пользователю и
// активности. Вход агрегации рейтинга.
func ListEntries(ctx context.Context, database *sql.DB, competitionID uuid.UUID) ([]models.Entry, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, user_id, activity_id, competition_id, value, points, created_at, updated_at
FROM user_entries
WHERE competition_id = $1
ORDER BY user_id, activity_id`, competitionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

// ListUserEntries — записи одного пользователя в соревновании.
func ListUserEntries(ctx context.Context, database *sql.DB, userID, competitionID uuid.UUID) ([]models.Entry, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, user_id, activity_id, competition_id, value, points, created_at, updated_at
FROM user_entries
WHERE user_id = $1 AND competition_id = $2
ORDER BY activity_id`, userID, competitionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

// ListEntryDetails — записи соревнования с именами для отчётов.
func ListEntryDetails(ctx context.Context, database *sql.DB, competitionID uuid.UUID) ([]models.EntryDetail, error) {
	rows, err := database.QueryContext(ctx, `
SELECT u.full_name, a.name, a.unit, e.value, e.points, e.updated_at
FROM user_entries e
JOIN users u ON u.id = e.user_id
JOIN activities a ON a.id = e.activity_id
WHERE e.competition_id = $1
ORDER BY u.full_name, a.name`, competitionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.EntryDetail
	for rows.Next() {
		var d models.EntryDetail
		if err := rows.Scan(&d.UserName, &d.ActivityName, &d.Unit, &d.Value, &d.Points, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActivityID, &e.CompetitionID, &e.Value, &e.Points, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
