package admin

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
}

type RoomRepository interface {
	List(ctx context.Context, f repository.RoomFilter) ([]domain.Room, int64, error)
}
