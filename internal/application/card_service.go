package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
	repo "github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/apperror"
)

type CardService struct {
	Repo   repo.CardRepository
	Logger *logrus.Logger
}

func NewCardService(r repo.CardRepository, logger *logrus.Logger) *CardService {
	return &CardService{Repo: r, Logger: logger}
}

func (s *CardService) List(ctx context.Context) ([]entity.Card, error) {
	cards, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cards, nil
}

func (s *CardService) Create(ctx context.Context, ownerID, name, link string) (*entity.Card, error) {
	c := &entity.Card{Name: name, Link: link, OwnerID: ownerID}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, storeError(err, MsgCardNotFound)
	}
	return c, nil
}

// Delete removes a card owned by userID. Ownership is checked before the
// delete, which is itself conditioned on the owner.
func (s *CardService) Delete(ctx context.Context, id, userID string) (*entity.Card, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, MsgCardNotFound)
	}
	if !c.OwnedBy(userID) {
		return nil, apperror.Forbidden(MsgNotCardOwner)
	}
	deleted, err := s.Repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, MsgCardNotFound)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"card_id": deleted.ID, "user_id": userID}).Debug("card deleted")
	}
	return deleted, nil
}

func (s *CardService) Like(ctx context.Context, id, userID string) (*entity.Card, error) {
	c, err := s.Repo.AddLike(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, MsgCardNotFound)
	}
	return c, nil
}

func (s *CardService) Unlike(ctx context.Context, id, userID string) (*entity.Card, error) {
	c, err := s.Repo.RemoveLike(ctx, id, userID)
	if err != nil {
		return nil, storeError(err, MsgCardNotFound)
	}
	return c, nil
}
