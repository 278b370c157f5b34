package service

import (
	"context"
	"log"
	"time"

	"courtbook/internal/repository"
)

// CompletionSweeper periodically moves reservations whose end time has
// passed out of the live table and into reservation_history with status
// "completed". Freed slots become bookable again as a side effect, since
// the overlap exclusion constraint only guards live rows.
type CompletionSweeper struct {
	reservations *repository.ReservationRepo
	interval     time.Duration
}

// NewCompletionSweeper builds a sweeper that runs every interval. Intervals
// below one second are clamped to one minute to avoid hammering the database
// when the configuration is missing or malformed.
func NewCompletionSweeper(reservations *repository.ReservationRepo, interval time.Duration) *CompletionSweeper {
	if interval < time.Second {
		interval = time.Minute
	}
	return &CompletionSweeper{reservations: reservations, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every tick. Sweep failures are logged and retried on the next tick.
func (s *CompletionSweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CompletionSweeper) sweep(ctx context.Context) {
	n, err := s.reservations.ArchiveFinished(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("completion-sweeper: archive failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("completion-sweeper: archived %d finished reservation(s)", n)
	}
}
