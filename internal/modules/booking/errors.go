package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation             = errors.New("validation error")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("booking not found")
	ErrRoomNotFound           = errors.New("room not found")
	ErrRoomUnavailable        = errors.New("room is not available for the selected dates")
	ErrRoomBusy               = errors.New("room is being booked by another request")
	ErrInvalidStateTransition = errors.New("invalid booking status transition")
	ErrNotVoucherEligible     = errors.New("voucher is only issued for paid or confirmed bookings")

	ErrAlreadyCancelled = fmt.Errorf("%w: booking already cancelled", ErrInvalidStateTransition)
	ErrNotCancellable   = fmt.Errorf("%w: completed bookings cannot be cancelled", ErrInvalidStateTransition)
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
