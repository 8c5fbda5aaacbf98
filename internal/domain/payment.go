package domain

import "time"

type PaymentStatus string

const PaymentSuccess PaymentStatus = "success"

// PaymentMethodOnline is settled immediately; any other method means the guest
// pays at the hotel.
const PaymentMethodOnline = "online"

type Payment struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	BookingID int64         `json:"booking_id" gorm:"index"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status" gorm:"size:16"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
