package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/models"
)

// CompetitionTotals суммирует баллы по пользователям соревнования.
// Порядок фиксированный: по убыванию суммы, при равенстве — по возрастанию
// идентификатора пользователя. Ранги проставляет сервисный слой.
func CompetitionTotals(ctx context.Context, database *sql.DB, competitionID uuid.UUID) ([]models.Standing, error) {
	rows, err := database.QueryContext(ctx, `
SELECT e.user_id, u.full_name, SUM(e.points)::int AS total_points, COUNT(*)::int AS entries
FROM user_entries e
JOIN users u ON u.id = e.user_id
WHERE e.competition_id = $1
GROUP BY e.user_id, u.full_name
ORDER BY total_points DESC, e.user_id ASC`, competitionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Standing
	for rows.Next() {
		var s models.Standing
		if err := rows.Scan(&s.UserID, &s.FullName, &s.TotalPoints, &s.Entries); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
