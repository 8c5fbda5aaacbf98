package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
)

func TestBookingRepository_CreateIfAvailable(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateIfAvailable(ctx, newBooking(f, "BK-1", "2025-01-10", "2025-01-13")))

	tests := []struct {
		name    string
		in, out string
		wantErr error
	}{
		{"same range", "2025-01-10", "2025-01-13", ErrStayConflict},
		{"overlaps start", "2025-01-08", "2025-01-11", ErrStayConflict},
		{"overlaps end", "2025-01-12", "2025-01-15", ErrStayConflict},
		{"inside", "2025-01-11", "2025-01-12", ErrStayConflict},
		{"ends on check-in", "2025-01-07", "2025-01-10", nil},
		{"starts on check-out", "2025-01-13", "2025-01-14", nil},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(f, "BK-T"+string(rune('a'+i)), tt.in, tt.out)
			err := repo.CreateIfAvailable(ctx, b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, b.ID)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, b.ID)
		})
	}
}

func TestBookingRepository_CreateIfAvailable_IgnoresCancelled(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	first := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, first))
	require.NoError(t, repo.Cancel(ctx, first, 0, "", time.Now().UTC()))

	assert.NoError(t, repo.CreateIfAvailable(ctx, newBooking(f, "BK-2", "2025-01-10", "2025-01-13")))
}

func TestBookingRepository_CreateIfAvailable_UnknownRoom(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)

	b := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	b.RoomID = 999
	assert.ErrorIs(t, repo.CreateIfAvailable(context.Background(), b), ErrNotFound)
}

func TestBookingRepository_CreateIfAvailable_Concurrent(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			b := newBooking(f, "BK-C"+string(rune('a'+i)), "2025-02-01", "2025-02-04")
			err := repo.CreateIfAvailable(context.Background(), b)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, ErrStayConflict):
				conflicts++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Where("room_id = ?", f.room.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookingRepository_GetOwned(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	got, err := repo.GetOwned(ctx, b.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "BK-1", got.Code)
	assert.True(t, got.CheckInDate.Equal(date("2025-01-10")))

	_, err = repo.GetOwned(ctx, b.ID, f.user.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_MarkPaid(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)

	b := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	p := &domain.Payment{Amount: b.TotalAmount, Status: domain.PaymentSuccess, PaidAt: &now}
	require.NoError(t, repo.MarkPaid(ctx, b, p, now))
	assert.NotZero(t, p.ID)
	assert.Equal(t, b.ID, p.BookingID)

	got, err := repo.GetOwned(ctx, b.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, got.Status)

	err = repo.MarkPaid(ctx, b, &domain.Payment{Amount: b.TotalAmount, Status: domain.PaymentSuccess}, now)
	assert.ErrorIs(t, err, ErrStaleState)

	var payments int64
	require.NoError(t, db.Model(&domain.Payment{}).Where("booking_id = ?", b.ID).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)
}

func TestBookingRepository_Cancel(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

	b := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, b))

	require.NoError(t, repo.Cancel(ctx, b, 1500000, "late arrival\n[Cancellation reason: plans changed]", now))

	got, err := repo.GetOwned(ctx, b.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.PenaltyAmount)
	assert.Equal(t, 1500000.0, *got.PenaltyAmount)
	require.NotNil(t, got.CancelledAt)
	assert.Contains(t, got.Note, "[Cancellation reason: plans changed]")

	err = repo.Cancel(ctx, b, 0, "again", now)
	assert.ErrorIs(t, err, ErrStaleState)

	got, err = repo.GetOwned(ctx, b.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, *got.PenaltyAmount)
}

func TestBookingRepository_CompleteFinishedStays(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	finished := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, finished))
	require.NoError(t, repo.MarkConfirmed(ctx, finished, now))

	draft := newBooking(f, "BK-2", "2025-01-13", "2025-01-14")
	require.NoError(t, repo.CreateIfAvailable(ctx, draft))

	upcoming := newBooking(f, "BK-3", "2025-01-20", "2025-01-22")
	require.NoError(t, repo.CreateIfAvailable(ctx, upcoming))
	require.NoError(t, repo.MarkConfirmed(ctx, upcoming, now))

	n, err := repo.CompleteFinishedStays(ctx, date("2025-01-14"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetOwned(ctx, finished.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)

	got, err = repo.GetOwned(ctx, draft.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingDraft, got.Status)
}

func TestBookingRepository_Projections(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	older := newBooking(f, "BK-1", "2025-01-10", "2025-01-13")
	require.NoError(t, repo.CreateIfAvailable(ctx, older))
	newer := newBooking(f, "BK-2", "2025-03-01", "2025-03-02")
	require.NoError(t, repo.CreateIfAvailable(ctx, newer))

	rows, err := repo.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BK-2", rows[0].Code)
	assert.Equal(t, "Riverside", rows[0].HotelName)
	assert.Equal(t, "101", rows[0].RoomNumber)
	assert.Equal(t, "VIP", rows[0].RoomType)

	info, err := repo.GetInfo(ctx, older.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hanoi", info.HotelCity)
	assert.Equal(t, 3, info.Nights)
	assert.Equal(t, 3000000.0, info.TotalAmount)
	assert.True(t, info.FreeCancellationDeadline.Equal(date("2025-01-07")))

	_, err = repo.GetInfo(ctx, older.ID, f.user.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_ActiveStaysByRoom(t *testing.T) {
	db := setupDB(t)
	f := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateIfAvailable(ctx, newBooking(f, "BK-1", "2025-01-01", "2025-01-03")))
	require.NoError(t, repo.CreateIfAvailable(ctx, newBooking(f, "BK-2", "2025-01-10", "2025-01-13")))

	stays, err := repo.ActiveStaysByRoom(ctx, []int64{f.room.ID}, date("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, stays[f.room.ID], 1)
	assert.True(t, stays[f.room.ID][0].CheckIn.Equal(date("2025-01-10")))

	empty, err := repo.ActiveStaysByRoom(ctx, nil, date("2025-01-05"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
