package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingDraft     BookingStatus = "draft"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// FreeCancellationWindow is how long before check-in a booking can still be
// cancelled without a penalty.
const FreeCancellationWindow = 3 * 24 * time.Hour

// CancellationPenaltyRate is the share of the total charged after the deadline.
const CancellationPenaltyRate = 0.5

type Booking struct {
	ID                       int64         `json:"id" gorm:"primaryKey"`
	Code                     string        `json:"code" gorm:"size:32;uniqueIndex"`
	UserID                   int64         `json:"user_id" gorm:"index"`
	HotelID                  int64         `json:"hotel_id"`
	RoomID                   int64         `json:"room_id" gorm:"index"`
	Status                   BookingStatus `json:"status" gorm:"size:16;index"`
	CheckInDate              time.Time     `json:"check_in_date" gorm:"type:date"`
	CheckOutDate             time.Time     `json:"check_out_date" gorm:"type:date"`
	Guests                   int           `json:"guests"`
	PricePerNight            float64       `json:"price_per_night"`
	Nights                   int           `json:"nights"`
	SubTotal                 float64       `json:"sub_total"`
	TotalAmount              float64       `json:"total_amount"`
	FreeCancellationDeadline time.Time     `json:"free_cancellation_deadline"`
	PenaltyAmount            *float64      `json:"penalty_amount,omitempty"`
	Note                     string        `json:"note,omitempty" gorm:"type:text"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
	CancelledAt              *time.Time    `json:"cancelled_at,omitempty"`
	DeletedAt                *time.Time    `json:"-"`

	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

func (Booking) TableName() string { return "bookings" }

// Stay returns the booked date range.
func (b *Booking) Stay() StayRange {
	return StayRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// Penalty returns what cancelling at `at` would cost.
func (b *Booking) Penalty(at time.Time) float64 {
	if at.After(b.FreeCancellationDeadline) {
		return RoundMoney(b.TotalAmount * CancellationPenaltyRate)
	}
	return 0
}

var transitions = map[BookingStatus][]BookingStatus{
	BookingDraft:     {BookingPaid, BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled, BookingCompleted},
	BookingPaid:      {BookingCancelled, BookingCompleted},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RoundMoney rounds an amount to two decimals.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
