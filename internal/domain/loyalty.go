package domain

import "time"

type LoyaltyAccount struct {
	UserID      int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TotalPoints int64     `json:"total_points"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (LoyaltyAccount) TableName() string { return "loyalty_accounts" }

type LoyaltyEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index"`
	BookingID int64     `json:"booking_id" gorm:"uniqueIndex"`
	Points    int64     `json:"points"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (LoyaltyEntry) TableName() string { return "loyalty_entries" }
