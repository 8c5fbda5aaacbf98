// Package jobs holds background maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"hotelbooking/internal/domain"
)

type StayCompleter interface {
	CompleteFinishedStays(ctx context.Context, today time.Time) (int64, error)
}

// CompleteFinishedStays marks paid and confirmed bookings whose check-out day
// has come as completed.
func CompleteFinishedStays(ctx context.Context, repo StayCompleter, now time.Time) (int64, error) {
	n, err := repo.CompleteFinishedStays(ctx, domain.DateOf(now))
	if err != nil {
		return 0, fmt.Errorf("complete finished stays: %w", err)
	}
	return n, nil
}

type Scheduler struct {
	s   gocron.Scheduler
	log *zap.Logger
}

// NewScheduler runs the stay-completion job every interval, starting right
// away. Runs never overlap.
func NewScheduler(repo StayCompleter, interval time.Duration, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := CompleteFinishedStays(ctx, repo, time.Now().UTC())
		if err != nil {
			log.Error("stay completion failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("stays completed", zap.Int64("count", n))
		}
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(run),
		gocron.WithName("complete-finished-stays"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return &Scheduler{s: s, log: log}, nil
}

func (s *Scheduler) Start() { s.s.Start() }

func (s *Scheduler) Shutdown() error { return s.s.Shutdown() }
