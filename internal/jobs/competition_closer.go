package jobs

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/velmark/fitness-contest/internal/ctxutil"
	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/metrics"
	"github.com/velmark/fitness-contest/internal/observability"
	"github.com/velmark/fitness-contest/internal/service"
)

// CloseElapsedCompetitions снимает флаг активности со всех соревнований за
// полностью прошедшие месяцы. Запускается периодически; повторный прогон
// ничего не меняет.
func CloseElapsedCompetitions(database *sql.DB, loc *time.Location, log *zap.SugaredLogger) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()

		month := service.NormalizeMonth(time.Now().In(loc))
		n, err := db.CloseElapsedCompetitions(ctx, database, month)
		if err != nil {
			observability.CaptureErr(err)
			return err
		}
		if n > 0 {
			metrics.CompetitionsClosed.Add(float64(n))
			log.Infow("закрыты соревнования прошедших месяцев", "count", n)
		}
		return nil
	}
}
