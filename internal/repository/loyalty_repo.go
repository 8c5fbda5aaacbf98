package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
)

type LoyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

// AddEntry records the entry and adds its points to the account balance.
// It returns false without changes when the booking was already credited.
func (r *LoyaltyRepository) AddEntry(ctx context.Context, e *domain.LoyaltyEntry) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			DoNothing: true,
		}).Create(e)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		acc := domain.LoyaltyAccount{
			UserID:      e.UserID,
			TotalPoints: e.Points,
			UpdatedAt:   time.Now().UTC(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_points": gorm.Expr("loyalty_accounts.total_points + ?", e.Points),
				"updated_at":   acc.UpdatedAt,
			}),
		}).Create(&acc).Error
		if err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (r *LoyaltyRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	var acc domain.LoyaltyAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&acc).Error
	if err != nil {
		return 0, err
	}
	return acc.TotalPoints, nil
}

type UnaccruedPayment struct {
	BookingID int64   `gorm:"column:booking_id"`
	UserID    int64   `gorm:"column:user_id"`
	Amount    float64 `gorm:"column:amount"`
}

// UnaccruedPayments lists successful payments of at least minAmount whose
// booking has no loyalty entry yet, oldest first.
func (r *LoyaltyRepository) UnaccruedPayments(ctx context.Context, minAmount float64, limit int) ([]UnaccruedPayment, error) {
	var rows []UnaccruedPayment
	err := r.db.WithContext(ctx).
		Table("payments p").
		Select("p.booking_id, b.user_id, p.amount").
		Joins("JOIN bookings b ON b.id = p.booking_id").
		Joins("LEFT JOIN loyalty_entries le ON le.booking_id = p.booking_id").
		Where("p.status = ? AND p.amount >= ? AND le.id IS NULL", domain.PaymentSuccess, minAmount).
		Order("p.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
