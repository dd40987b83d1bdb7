package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Submissions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcontest", Name: "submissions_total", Help: "Accepted activity submissions",
	})
	SubmissionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcontest", Name: "submission_errors_total", Help: "Rejected activity submissions",
	}, []string{"reason"})
	LeaderboardQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcontest", Name: "leaderboard_queries_total", Help: "Leaderboard computations",
	})
	CompetitionsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcontest", Name: "competitions_closed_total", Help: "Competitions closed by the monthly job",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitcontest", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Submissions, SubmissionErrors, LeaderboardQueries, CompetitionsClosed, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
