package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type BookingRepository interface {
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	GetOwned(ctx context.Context, id, userID int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, b *domain.Booking, p *domain.Payment, now time.Time) error
	MarkConfirmed(ctx context.Context, b *domain.Booking, now time.Time) error
	Cancel(ctx context.Context, b *domain.Booking, penalty float64, note string, now time.Time) error
	ListByUser(ctx context.Context, userID int64) ([]repository.UserBookingRow, error)
	GetInfo(ctx context.Context, id, userID int64) (*repository.BookingInfoRow, error)
}

type RoomRepository interface {
	GetRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	GetRoomInfo(ctx context.Context, roomID int64) (*repository.RoomInfoRow, error)
}

// LoyaltyAccruer credits points for a paid booking.
type LoyaltyAccruer interface {
	Accrue(ctx context.Context, userID, bookingID int64, amount float64) (int64, error)
}
