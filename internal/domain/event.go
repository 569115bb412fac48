package domain

import "time"

type BookingEventType string

const (
	EventBookingCreated    BookingEventType = "booking.created"
	EventBookingConfirmed  BookingEventType = "booking.confirmed"
	EventBookingModified   BookingEventType = "booking.modified"
	EventBookingCancelled  BookingEventType = "booking.cancelled"
	EventBookingCheckedIn  BookingEventType = "booking.checked_in"
	EventBookingCheckedOut BookingEventType = "booking.checked_out"
)

// BookingEvent is published after a lifecycle change has been committed.
type BookingEvent struct {
	ID            string           `json:"id"`
	Type          BookingEventType `json:"type"`
	BookingID     int64            `json:"booking_id"`
	BookingNumber string           `json:"booking_number"`
	UserID        int64            `json:"user_id"`
	RoomID        int64            `json:"room_id"`
	Status        BookingStatus    `json:"status"`
	Total         float64          `json:"total"`
	RefundAmount  float64          `json:"refund_amount,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
