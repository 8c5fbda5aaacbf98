package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/pkg/lock"
	"hotelbooking/internal/repository"
)

// PublishTimeout bounds how long a request waits on event delivery.
const PublishTimeout = 2 * time.Second

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	locker   lock.Locker
	loyalty  LoyaltyAccruer
	events   notification.Sender
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	locker lock.Locker,
	loyalty LoyaltyAccruer,
	events notification.Sender,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		locker:   locker,
		loyalty:  loyalty,
		events:   events,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateBooking(ctx context.Context, id domain.Identity, req CreateBookingRequest) (*domain.Booking, error) {
	if !id.IsCustomer() {
		return nil, ErrForbidden
	}

	checkIn, err := domain.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, validationError("checkInDate must be YYYY-MM-DD")
	}
	checkOut, err := domain.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, validationError("checkOutDate must be YYYY-MM-DD")
	}
	stay := domain.StayRange{CheckIn: checkIn, CheckOut: checkOut}
	if !stay.Valid() {
		return nil, validationError("check-out date must be after check-in date")
	}
	if req.Guests < 1 {
		return nil, validationError("at least one guest is required")
	}

	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	if !room.IsActive || room.HotelID != req.HotelID {
		return nil, ErrRoomNotFound
	}
	if req.Guests > room.Capacity {
		return nil, validationError(fmt.Sprintf("room holds at most %d guests", room.Capacity))
	}

	now := s.now()
	nights := stay.Nights()
	subTotal := domain.RoundMoney(room.PricePerNight * float64(nights))

	b := &domain.Booking{
		Code:                     newBookingCode(now),
		UserID:                   id.UserID,
		HotelID:                  room.HotelID,
		RoomID:                   room.ID,
		Status:                   domain.BookingDraft,
		CheckInDate:              checkIn,
		CheckOutDate:             checkOut,
		Guests:                   req.Guests,
		PricePerNight:            room.PricePerNight,
		Nights:                   nights,
		SubTotal:                 subTotal,
		TotalAmount:              subTotal,
		FreeCancellationDeadline: checkIn.Add(-domain.FreeCancellationWindow),
		Note:                     strings.TrimSpace(req.Note),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.insertLocked(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.String("code", b.Code),
		zap.Int64("user_id", b.UserID),
		zap.Int64("room_id", b.RoomID),
	)
	s.publish(ctx, notification.TypeBookingCreated, b, b.TotalAmount)
	return b, nil
}

// insertLocked holds the room lock only around the availability check and
// insert. Events are published after it is released.
func (s *Service) insertLocked(ctx context.Context, b *domain.Booking) error {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, b.RoomID)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return ErrRoomBusy
			}
			return fmt.Errorf("lock room: %w", err)
		}
		defer unlock()
	}

	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrStayConflict):
			return ErrRoomUnavailable
		case errors.Is(err, repository.ErrNotFound):
			return ErrRoomNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// newBookingCode builds BK<yyyyMMddHHmmss>-<6 hex>.
func newBookingCode(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "BK" + now.Format("20060102150405") + "-" + suffix
}

func (s *Service) ProcessPayment(ctx context.Context, id domain.Identity, bookingID int64, method string) (*PaymentResult, error) {
	b, err := s.owned(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}

	online := method == domain.PaymentMethodOnline
	target := domain.BookingConfirmed
	if online {
		target = domain.BookingPaid
	}
	if b.Status != domain.BookingDraft || !domain.CanTransition(b.Status, target) {
		return nil, fmt.Errorf("%w: cannot pay a %s booking", ErrInvalidStateTransition, b.Status)
	}

	now := s.now()
	if !online {
		if err := s.bookings.MarkConfirmed(ctx, b, now); err != nil {
			return nil, s.transitionError("confirm booking", err)
		}
		b.Status = domain.BookingConfirmed
		s.publish(ctx, notification.TypeBookingConfirmed, b, b.TotalAmount)
		return &PaymentResult{
			Status:  string(b.Status),
			Message: "Booking confirmed. Please pay at the hotel.",
		}, nil
	}

	payment := &domain.Payment{
		Amount:    b.TotalAmount,
		Status:    domain.PaymentSuccess,
		PaidAt:    &now,
		CreatedAt: now,
	}
	if err := s.bookings.MarkPaid(ctx, b, payment, now); err != nil {
		return nil, s.transitionError("mark paid", err)
	}
	b.Status = domain.BookingPaid

	if s.loyalty != nil {
		points, err := s.loyalty.Accrue(ctx, b.UserID, b.ID, payment.Amount)
		if err != nil {
			s.log.Error("loyalty accrual failed", zap.Int64("booking_id", b.ID), zap.Error(err))
		} else if points > 0 {
			s.log.Info("loyalty points accrued", zap.Int64("booking_id", b.ID), zap.Int64("points", points))
		}
	}

	s.publish(ctx, notification.TypeBookingPaid, b, payment.Amount)
	return &PaymentResult{
		Status:  string(b.Status),
		Message: "Payment successful!",
	}, nil
}

func (s *Service) CancelBooking(ctx context.Context, id domain.Identity, bookingID int64, reason string) (*CancellationResult, error) {
	b, err := s.owned(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingCancelled:
		return nil, ErrAlreadyCancelled
	case domain.BookingCompleted:
		return nil, ErrNotCancellable
	}

	now := s.now()
	penalty := b.Penalty(now)
	refund := domain.RoundMoney(b.TotalAmount - penalty)
	note := appendReason(b.Note, reason)

	if err := s.bookings.Cancel(ctx, b, penalty, note, now); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, s.staleCancel(ctx, b)
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	b.Status = domain.BookingCancelled
	b.PenaltyAmount = &penalty

	s.log.Info("booking cancelled",
		zap.Int64("booking_id", b.ID),
		zap.Float64("penalty", penalty),
		zap.Float64("refund", refund),
	)
	s.publish(ctx, notification.TypeBookingCancelled, b, refund)

	return &CancellationResult{
		PenaltyAmount: penalty,
		RefundAmount:  refund,
		Message:       cancellationMessage(penalty, refund),
	}, nil
}

// staleCancel reports why a concurrent status change beat this cancellation.
func (s *Service) staleCancel(ctx context.Context, b *domain.Booking) error {
	current, err := s.bookings.GetOwned(ctx, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("reload booking: %w", err)
	}
	if current.Status == domain.BookingCompleted {
		return ErrNotCancellable
	}
	return ErrAlreadyCancelled
}

func appendReason(note, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return note
	}
	line := "[Cancellation reason: " + reason + "]"
	if note == "" {
		return line
	}
	return note + "\n" + line
}

var printer = message.NewPrinter(language.English)

func cancellationMessage(penalty, refund float64) string {
	if penalty == 0 {
		return "Booking cancelled. The full amount will be refunded."
	}
	return printer.Sprintf("Booking cancelled. Cancellation fee: %.0f. Refund amount: %.0f.", penalty, refund)
}

func (s *Service) GetMyBookings(ctx context.Context, id domain.Identity) ([]BookingSummary, error) {
	if !id.IsCustomer() {
		return nil, ErrForbidden
	}
	rows, err := s.bookings.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]BookingSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingSummary{
			ID:           r.ID,
			Code:         r.Code,
			HotelName:    r.HotelName,
			RoomNumber:   r.RoomNumber,
			RoomType:     r.RoomType,
			CheckInDate:  domain.FormatDate(r.CheckInDate),
			CheckOutDate: domain.FormatDate(r.CheckOutDate),
			Status:       r.Status,
			TotalAmount:  r.TotalAmount,
		})
	}
	return out, nil
}

func (s *Service) GetBookingInfo(ctx context.Context, id domain.Identity, bookingID int64) (*BookingInfo, error) {
	if !id.IsCustomer() {
		return nil, ErrForbidden
	}
	r, err := s.bookings.GetInfo(ctx, bookingID, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking info: %w", err)
	}

	return &BookingInfo{
		ID:                       r.ID,
		Code:                     r.Code,
		Status:                   r.Status,
		CheckInDate:              domain.FormatDate(r.CheckInDate),
		CheckOutDate:             domain.FormatDate(r.CheckOutDate),
		Guests:                   r.Guests,
		TotalAmount:              r.TotalAmount,
		Note:                     r.Note,
		FreeCancellationDeadline: r.FreeCancellationDeadline,
		PenaltyAmount:            r.PenaltyAmount,
		HotelName:                r.HotelName,
		HotelAddress:             r.HotelAddress + ", " + r.HotelCity,
		RoomInfo: RoomSnapshot{
			RoomNumber:    r.RoomNumber,
			RoomType:      r.RoomType,
			PricePerNight: r.PricePerNight,
			Nights:        r.Nights,
			SubTotal:      r.SubTotal,
		},
	}, nil
}

func (s *Service) GetRoomInfo(ctx context.Context, roomID int64) (*RoomInfo, error) {
	r, err := s.rooms.GetRoomInfo(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room info: %w", err)
	}
	return &RoomInfo{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		Name:          r.Name,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		HotelName:     r.HotelName,
	}, nil
}

// Voucher returns the booking if a voucher may be issued for it.
func (s *Service) Voucher(ctx context.Context, id domain.Identity, bookingID int64) (*domain.Booking, error) {
	b, err := s.owned(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPaid && b.Status != domain.BookingConfirmed {
		return nil, ErrNotVoucherEligible
	}
	return b, nil
}

func (s *Service) owned(ctx context.Context, id domain.Identity, bookingID int64) (*domain.Booking, error) {
	if !id.IsCustomer() {
		return nil, ErrForbidden
	}
	b, err := s.bookings.GetOwned(ctx, bookingID, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *Service) transitionError(op string, err error) error {
	if errors.Is(err, repository.ErrStaleState) {
		return fmt.Errorf("%w: booking is no longer a draft", ErrInvalidStateTransition)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) publish(ctx context.Context, eventType string, b *domain.Booking, amount float64) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()

	err := s.events.Publish(ctx, notification.Event{
		Type:       eventType,
		BookingID:  b.ID,
		Code:       b.Code,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		Status:     string(b.Status),
		Amount:     amount,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.log.Warn("publish booking event failed",
			zap.String("type", eventType),
			zap.Int64("booking_id", b.ID),
			zap.Error(err),
		)
	}
}
