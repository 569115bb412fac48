package catalog

import "errors"

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomNumberTaken       = errors.New("room number already exists")
	ErrRoomHasActiveBookings = errors.New("room has active bookings")
	ErrInvalidDateRange      = errors.New("check-out must be after check-in")
	ErrValidation            = errors.New("validation failed")
)
