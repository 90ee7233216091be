// Package scheduler runs the gateway housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper drops expired sessions and reports how many it removed.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))}
}

// AddSessionSweep runs sweeper.Sweep on a cron schedule, e.g. "@every 15m" or "0 2 * * *".
func (s *Scheduler) AddSessionSweep(spec string, sweeper Sweeper) error {
	_, err := s.cron.AddFunc(spec, func() { runSweep(sweeper) })
	if err != nil {
		return fmt.Errorf("scheduler: bad schedule %q: %w", spec, err)
	}
	return nil
}

func runSweep(sweeper Sweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if n := sweeper.Sweep(ctx); n > 0 {
		log.Info().Int("removed", n).Msg("🗑️ Removed expired sessions")
	}
}

// Next returns the time of the next scheduled run, zero if none.
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || (!e.Next.IsZero() && e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("⏳ Session sweep scheduled")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
