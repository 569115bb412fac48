package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error)
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error
	UpdateIfAvailable(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// LoyaltyAwarder credits points to a guest; optional.
type LoyaltyAwarder interface {
	AddLoyaltyPoints(ctx context.Context, userID int64, points int) error
}

// EventSender receives lifecycle events after they are committed; optional.
type EventSender interface {
	SendBookingEvent(ctx context.Context, evt domain.BookingEvent) error
}
