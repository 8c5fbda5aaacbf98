package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

// RoomRepository is the read-only catalog of hotels and rooms.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetRoom returns a room whose hotel is active. Rooms of closed hotels are
// reported as ErrNotFound.
func (r *RoomRepository) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id AND hotels.is_active = ?", true).
		Where("rooms.id = ?", roomID).
		First(&room).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (r *RoomRepository) GetActiveHotel(ctx context.Context, hotelID int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", hotelID, true).
		First(&h).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *RoomRepository) ActiveRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_active = ?", hotelID, true).
		Order("price_per_night ASC, room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

type HotelSummaryRow struct {
	domain.Hotel
	MinPrice *float64 `gorm:"column:min_price"`
}

// ListActiveHotels returns active hotels with the lowest active room price.
func (r *RoomRepository) ListActiveHotels(ctx context.Context) ([]HotelSummaryRow, error) {
	var rows []HotelSummaryRow
	err := r.db.WithContext(ctx).
		Model(&domain.Hotel{}).
		Select(`hotels.*,
			(SELECT MIN(rm.price_per_night) FROM rooms rm
			 WHERE rm.hotel_id = hotels.id AND rm.is_active = ?) AS min_price`, true).
		Where("hotels.is_active = ?", true).
		Order("hotels.name ASC").
		Scan(&rows).Error
	return rows, err
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchHotels returns active hotels whose city, name or address contains
// location, case-insensitively, with their active rooms preloaded.
func (r *RoomRepository) SearchHotels(ctx context.Context, location string) ([]domain.Hotel, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(location))) + "%"

	var hotels []domain.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", "is_active = ?", true).
		Where("is_active = ?", true).
		Where(`LOWER(city) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("name ASC").
		Find(&hotels).Error
	return hotels, err
}

type RoomInfoRow struct {
	ID            int64   `gorm:"column:id"`
	HotelID       int64   `gorm:"column:hotel_id"`
	RoomNumber    string  `gorm:"column:room_number"`
	RoomType      string  `gorm:"column:room_type"`
	Name          string  `gorm:"column:name"`
	PricePerNight float64 `gorm:"column:price_per_night"`
	Capacity      int     `gorm:"column:capacity"`
	HotelName     string  `gorm:"column:hotel_name"`
}

func (r *RoomRepository) GetRoomInfo(ctx context.Context, roomID int64) (*RoomInfoRow, error) {
	var rows []RoomInfoRow
	err := r.db.WithContext(ctx).
		Table("rooms rm").
		Select("rm.id, rm.hotel_id, rm.room_number, rm.code AS room_type, rm.name, rm.price_per_night, rm.capacity, h.name AS hotel_name").
		Joins("JOIN hotels h ON h.id = rm.hotel_id").
		Where("rm.id = ?", roomID).
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
