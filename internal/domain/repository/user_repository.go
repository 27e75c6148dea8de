package repository

import (
	"context"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error)
}
