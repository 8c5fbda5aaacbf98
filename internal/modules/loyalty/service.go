// Package loyalty credits points for paid bookings.
package loyalty

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"hotelbooking/internal/domain"
)

// AmountPerPoint is how much has to be paid to earn one point.
const AmountPerPoint = 10000

type Repository interface {
	AddEntry(ctx context.Context, e *domain.LoyaltyEntry) (bool, error)
	Balance(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// PointsFor returns the points earned for a paid amount.
func PointsFor(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(math.Floor(amount / AmountPerPoint))
}

// Accrue credits the booking once. Repeated calls for the same booking return
// zero points and change nothing.
func (s *Service) Accrue(ctx context.Context, userID, bookingID int64, amount float64) (int64, error) {
	points := PointsFor(amount)
	if points == 0 {
		return 0, nil
	}

	added, err := s.repo.AddEntry(ctx, &domain.LoyaltyEntry{
		UserID:    userID,
		BookingID: bookingID,
		Points:    points,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("add loyalty entry: %w", err)
	}
	if !added {
		s.log.Debug("booking already credited", zap.Int64("booking_id", bookingID))
		return 0, nil
	}
	return points, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.repo.Balance(ctx, userID)
}
