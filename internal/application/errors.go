package application

import (
	"errors"

	repo "github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/apperror"
)

// Client-facing messages.
const (
	MsgUserNotFound       = "user not found"
	MsgCardNotFound       = "card not found"
	MsgInvalidCredentials = "incorrect email or password"
	MsgEmailTaken         = "user with this email already exists"
	MsgNotCardOwner       = "you can only delete your own cards"
	MsgInvalidData        = "invalid data"
)

// storeError maps repository errors to apperror kinds.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repo.ErrDuplicate):
		return apperror.Wrap(apperror.KindConflict, MsgEmailTaken, err)
	case errors.Is(err, repo.ErrInvalid):
		return apperror.Wrap(apperror.KindBadRequest, MsgInvalidData, err)
	default:
		return apperror.Internal(err)
	}
}
