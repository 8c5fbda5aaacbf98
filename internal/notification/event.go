// Package notification fans booking lifecycle events out to connected
// clients and to the event stream.
package notification

import (
	"context"
	"errors"
	"time"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingPaid      = "booking.paid"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	Code       string    `json:"code"`
	UserID     int64     `json:"userId"`
	RoomID     int64     `json:"roomId"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Sender interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every sender and joins their errors.
type Multi []Sender

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
