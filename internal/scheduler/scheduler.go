// Package scheduler runs a job on a cron schedule in UTC.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
)

// Job is one scheduled unit of work. It must return when ctx is done.
type Job func(ctx context.Context)

type Scheduler struct {
	ctx     context.Context
	cron    *cron.Cron
	spec    string
	timeout time.Duration
	job     Job

	// serializes runs so a slow run and the next tick never overlap
	mu sync.Mutex
}

func New(ctx context.Context, spec string, timeout time.Duration, job Job) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:     ctx,
		cron:    c,
		spec:    spec,
		timeout: timeout,
		job:     job,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunNow); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("[Scheduler] Started", slog.String("spec", s.spec))

	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.mu.Lock()
	defer s.mu.Unlock()
	slog.Info("[Scheduler] Stopped")
}

// RunNow runs the job once with the per-run timeout.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	select {
	case <-ctx.Done():
		slog.Info("[Scheduler] Context is done, skipping run",
			slog.String("error", ctx.Err().Error()))
		return
	default:
	}

	start := time.Now()
	slog.Info("[Scheduler] Running scheduled job")
	s.job(ctx)
	slog.Info("[Scheduler] Scheduled job finished", slog.Duration("elapsed", time.Since(start)))
}
