package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/velmark/fitness-contest/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				start := time.Now()
				func() {
					defer func() {
						if rec := recover(); rec != nil {
							observability.CaptureErr(fmt.Errorf("panic in job %s: %v", name, rec))
							jobErrors.WithLabelValues(name).Inc()
						}
					}()
					if err := fn(r.ctx); err != nil {
						jobErrors.WithLabelValues(name).Inc()
					}
				}()
				jobRuns.WithLabelValues(name).Inc()
				jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			}
		}
	}()
}
