package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	hotel domain.Hotel
	room  domain.Room
	user  domain.Account
}

func seedCatalog(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		hotel: domain.Hotel{Name: "Riverside", Address: "12 Bank St", City: "Hanoi", Country: "VN", StarRating: 4, IsActive: true},
		user:  domain.Account{Email: "guest@example.com", PasswordHash: "x", Role: domain.RoleCustomer, FullName: "Guest"},
	}
	require.NoError(t, db.Create(&f.hotel).Error)
	f.room = domain.Room{HotelID: f.hotel.ID, RoomNumber: "101", Code: "VIP", Name: "Deluxe", Capacity: 2, PricePerNight: 1000000, IsActive: true}
	require.NoError(t, db.Create(&f.room).Error)
	require.NoError(t, db.Create(&f.user).Error)
	return f
}

func newBooking(f fixture, code, in, out string) *domain.Booking {
	checkIn, checkOut := date(in), date(out)
	nights := domain.StayRange{CheckIn: checkIn, CheckOut: checkOut}.Nights()
	total := f.room.PricePerNight * float64(nights)
	return &domain.Booking{
		Code:                     code,
		UserID:                   f.user.ID,
		HotelID:                  f.hotel.ID,
		RoomID:                   f.room.ID,
		Status:                   domain.BookingDraft,
		CheckInDate:              checkIn,
		CheckOutDate:             checkOut,
		Guests:                   2,
		PricePerNight:            f.room.PricePerNight,
		Nights:                   nights,
		SubTotal:                 total,
		TotalAmount:              total,
		FreeCancellationDeadline: checkIn.Add(-domain.FreeCancellationWindow),
	}
}
