package catalog

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	Update(ctx context.Context, room *domain.Room) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, f repository.RoomFilter) ([]domain.Room, int64, error)
}

// OccupancyChecker answers whether a room still has guests coming or staying.
type OccupancyChecker interface {
	HasUpcomingOccupying(ctx context.Context, roomID int64, now time.Time) (bool, error)
}
