package repository

import (
	"context"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

// CardRepository defines the interface for card persistence. AddLike and
// RemoveLike are single atomic statements and return the card after the change.
type CardRepository interface {
	Create(ctx context.Context, c *entity.Card) error
	List(ctx context.Context) ([]entity.Card, error)
	GetByID(ctx context.Context, id string) (*entity.Card, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*entity.Card, error)
	AddLike(ctx context.Context, id, userID string) (*entity.Card, error)
	RemoveLike(ctx context.Context, id, userID string) (*entity.Card, error)
}
