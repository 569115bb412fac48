package auth

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

// UserRepository is the subset of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
