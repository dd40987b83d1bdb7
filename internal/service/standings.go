package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/metrics"
	"github.com/velmark/fitness-contest/internal/models"
)

// Standings строит рейтинг соревнования с нуля по текущим записям.
// Ничего не кешируется: результат не может разойтись с данными.
func Standings(ctx context.Context, database *sql.DB, competitionID uuid.UUID) ([]models.Standing, error) {
	totals, err := db.CompetitionTotals(ctx, database, competitionID)
	if err != nil {
		return nil, err
	}
	metrics.LeaderboardQueries.Inc()
	return Rank(totals), nil
}

// Rank упорядочивает участников и проставляет ранги по схеме «1,1,3,4»:
// равные суммы делят один ранг, следующая сумма сдвигает ранг на число
// поделивших. При равенстве сумм порядок задаёт возрастание идентификатора
// пользователя — рейтинг воспроизводим от вызова к вызову.
func Rank(totals []models.Standing) []models.Standing {
	out := make([]models.Standing, len(totals))
	copy(out, totals)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	for i := range out {
		if i > 0 && out[i].TotalPoints == out[i-1].TotalPoints {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
