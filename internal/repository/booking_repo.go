package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type stayRow struct {
	RoomID       int64     `gorm:"column:room_id"`
	CheckInDate  time.Time `gorm:"column:check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date"`
}

func (r stayRow) stay() domain.StayRange {
	return domain.StayRange{CheckIn: r.CheckInDate, CheckOut: r.CheckOutDate}
}

// activeStays loads non-cancelled stays of the given rooms that end after
// `from`. Earlier stays can never overlap a range starting at `from`.
func activeStays(ctx context.Context, db *gorm.DB, roomIDs []int64, from time.Time) ([]stayRow, error) {
	var rows []stayRow
	err := db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("room_id, check_in_date, check_out_date").
		Where("room_id IN ?", roomIDs).
		Where("status <> ?", domain.BookingCancelled).
		Where("check_out_date > ?", from).
		Scan(&rows).Error
	return rows, err
}

// CreateIfAvailable inserts b unless its stay overlaps an active booking of
// the same room. Check and insert share one transaction holding the room row.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	requested := b.Stay()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Select("id").First(&room, b.RoomID).Error; err != nil {
			return notFound(err)
		}

		rows, err := activeStays(ctx, tx, []int64{b.RoomID}, requested.CheckIn)
		if err != nil {
			return err
		}
		stays := make([]domain.StayRange, 0, len(rows))
		for _, row := range rows {
			stays = append(stays, row.stay())
		}
		if requested.ConflictsWith(stays) {
			return ErrStayConflict
		}

		return tx.Create(b).Error
	})
	if isExclusionViolation(err) {
		return ErrStayConflict
	}
	return err
}

// ActiveStaysByRoom groups the active stays ending after `from` by room.
func (r *BookingRepository) ActiveStaysByRoom(ctx context.Context, roomIDs []int64, from time.Time) (map[int64][]domain.StayRange, error) {
	out := make(map[int64][]domain.StayRange, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}
	rows, err := activeStays(ctx, r.db, roomIDs, from)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RoomID] = append(out[row.RoomID], row.stay())
	}
	return out, nil
}

// GetOwned returns the booking only if it belongs to userID.
func (r *BookingRepository) GetOwned(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// transition moves an owned booking from one of `from` to `to` and applies
// extra column updates, failing with ErrStaleState if nothing matched.
func transition(ctx context.Context, tx *gorm.DB, id, userID int64, from []domain.BookingStatus, to domain.BookingStatus, now time.Time, extra map[string]any) error {
	updates := map[string]any{
		"status":     to,
		"updated_at": now,
	}
	for k, v := range extra {
		updates[k] = v
	}

	res := tx.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND user_id = ?", id, userID).
		Where("status IN ?", from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// MarkPaid flips a draft booking to paid and records the payment atomically.
func (r *BookingRepository) MarkPaid(ctx context.Context, b *domain.Booking, p *domain.Payment, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transition(ctx, tx, b.ID, b.UserID, []domain.BookingStatus{domain.BookingDraft}, domain.BookingPaid, now, nil); err != nil {
			return err
		}
		p.BookingID = b.ID
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
}

func (r *BookingRepository) MarkConfirmed(ctx context.Context, b *domain.Booking, now time.Time) error {
	return transition(ctx, r.db, b.ID, b.UserID, []domain.BookingStatus{domain.BookingDraft}, domain.BookingConfirmed, now, nil)
}

// Cancel records the cancellation unless the booking already reached a
// terminal status.
func (r *BookingRepository) Cancel(ctx context.Context, b *domain.Booking, penalty float64, note string, now time.Time) error {
	from := []domain.BookingStatus{domain.BookingDraft, domain.BookingConfirmed, domain.BookingPaid}
	return transition(ctx, r.db, b.ID, b.UserID, from, domain.BookingCancelled, now, map[string]any{
		"cancelled_at":   now,
		"penalty_amount": penalty,
		"note":           note,
	})
}

// CompleteFinishedStays marks paid and confirmed bookings whose check-out
// day is on or before `today` as completed.
func (r *BookingRepository) CompleteFinishedStays(ctx context.Context, today time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status IN ?", []domain.BookingStatus{domain.BookingPaid, domain.BookingConfirmed}).
		Where("check_out_date <= ?", today).
		Updates(map[string]any{
			"status":     domain.BookingCompleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

type UserBookingRow struct {
	ID           int64     `gorm:"column:id"`
	Code         string    `gorm:"column:code"`
	HotelName    string    `gorm:"column:hotel_name"`
	RoomNumber   string    `gorm:"column:room_number"`
	RoomType     string    `gorm:"column:room_type"`
	CheckInDate  time.Time `gorm:"column:check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date"`
	Status       string    `gorm:"column:status"`
	TotalAmount  float64   `gorm:"column:total_amount"`
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]UserBookingRow, error) {
	var rows []UserBookingRow
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`
			b.id,
			b.code,
			h.name AS hotel_name,
			rm.room_number,
			rm.code AS room_type,
			b.check_in_date,
			b.check_out_date,
			b.status,
			b.total_amount
		`).
		Joins("JOIN hotels h ON h.id = b.hotel_id").
		Joins("JOIN rooms rm ON rm.id = b.room_id").
		Where("b.user_id = ? AND b.deleted_at IS NULL", userID).
		Order("b.created_at DESC, b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type BookingInfoRow struct {
	ID                       int64     `gorm:"column:id"`
	Code                     string    `gorm:"column:code"`
	Status                   string    `gorm:"column:status"`
	CheckInDate              time.Time `gorm:"column:check_in_date"`
	CheckOutDate             time.Time `gorm:"column:check_out_date"`
	Guests                   int       `gorm:"column:guests"`
	TotalAmount              float64   `gorm:"column:total_amount"`
	Note                     string    `gorm:"column:note"`
	FreeCancellationDeadline time.Time `gorm:"column:free_cancellation_deadline"`
	PenaltyAmount            *float64  `gorm:"column:penalty_amount"`
	HotelName                string    `gorm:"column:hotel_name"`
	HotelAddress             string    `gorm:"column:hotel_address"`
	HotelCity                string    `gorm:"column:hotel_city"`
	RoomNumber               string    `gorm:"column:room_number"`
	RoomType                 string    `gorm:"column:room_type"`
	PricePerNight            float64   `gorm:"column:price_per_night"`
	Nights                   int       `gorm:"column:nights"`
	SubTotal                 float64   `gorm:"column:sub_total"`
}

func (r *BookingRepository) GetInfo(ctx context.Context, id, userID int64) (*BookingInfoRow, error) {
	var rows []BookingInfoRow
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`
			b.id,
			b.code,
			b.status,
			b.check_in_date,
			b.check_out_date,
			b.guests,
			b.total_amount,
			b.note,
			b.free_cancellation_deadline,
			b.penalty_amount,
			h.name AS hotel_name,
			h.address AS hotel_address,
			h.city AS hotel_city,
			rm.room_number,
			rm.code AS room_type,
			b.price_per_night,
			b.nights,
			b.sub_total
		`).
		Joins("JOIN hotels h ON h.id = b.hotel_id").
		Joins("JOIN rooms rm ON rm.id = b.room_id").
		Where("b.id = ? AND b.user_id = ? AND b.deleted_at IS NULL", id, userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
