package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"hotelbooking/internal/modules/loyalty"
	"hotelbooking/internal/repository"
)

// reconcileBatch caps how many payments one run credits.
const reconcileBatch = 500

type UnaccruedPaymentSource interface {
	UnaccruedPayments(ctx context.Context, minAmount float64, limit int) ([]repository.UnaccruedPayment, error)
}

type Accruer interface {
	Accrue(ctx context.Context, userID, bookingID int64, amount float64) (int64, error)
}

// ReconcileLoyalty credits paid bookings whose accrual was missed after
// payment. Accrual is idempotent per booking, so a run racing a live payment
// cannot credit twice.
func ReconcileLoyalty(ctx context.Context, src UnaccruedPaymentSource, acc Accruer) (int, error) {
	rows, err := src.UnaccruedPayments(ctx, loyalty.AmountPerPoint, reconcileBatch)
	if err != nil {
		return 0, fmt.Errorf("load unaccrued payments: %w", err)
	}

	credited := 0
	var errs []error
	for _, p := range rows {
		points, err := acc.Accrue(ctx, p.UserID, p.BookingID, p.Amount)
		if err != nil {
			errs = append(errs, fmt.Errorf("booking %d: %w", p.BookingID, err))
			continue
		}
		if points > 0 {
			credited++
		}
	}
	return credited, errors.Join(errs...)
}

// AddLoyaltyReconciliation schedules ReconcileLoyalty every interval.
func (s *Scheduler) AddLoyaltyReconciliation(src UnaccruedPaymentSource, acc Accruer, interval time.Duration) error {
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := ReconcileLoyalty(ctx, src, acc)
		if err != nil {
			s.log.Error("loyalty reconciliation failed", zap.Int("credited", n), zap.Error(err))
			return
		}
		if n > 0 {
			s.log.Info("missed loyalty points credited", zap.Int("bookings", n))
		}
	}

	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(run),
		gocron.WithName("reconcile-loyalty"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	return err
}
