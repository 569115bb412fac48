package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrCapacityExceeded  = errors.New("guest count exceeds room capacity")
	ErrRoomUnavailable   = errors.New("room is not available for the selected dates")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("booking cannot be cancelled")
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")

	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrRoomNotFound    = fmt.Errorf("room %w", ErrNotFound)
	ErrRoomInactive    = fmt.Errorf("room is inactive: %w", ErrRoomUnavailable)
)
