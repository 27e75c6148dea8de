package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/mesto-api/internal/application"
	"github.com/oksasatya/mesto-api/internal/domain/entity"
	"github.com/oksasatya/mesto-api/internal/interface/middleware"
	"github.com/oksasatya/mesto-api/pkg/apperror"
	"github.com/oksasatya/mesto-api/pkg/helpers"
	"github.com/oksasatya/mesto-api/pkg/validation"
)

// UserService is the user use-case surface the handlers depend on.
type UserService interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Signup(ctx context.Context, in application.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *helpers.Claims, error)
	Signout(ctx context.Context, claims *helpers.Claims) error
	UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error)
	UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.User, error)
	SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error)
}

// CardService is the card use-case surface the handlers depend on.
type CardService interface {
	List(ctx context.Context) ([]entity.Card, error)
	Create(ctx context.Context, ownerID, name, link string) (*entity.Card, error)
	Delete(ctx context.Context, id, userID string) (*entity.Card, error)
	Like(ctx context.Context, id, userID string) (*entity.Card, error)
	Unlike(ctx context.Context, id, userID string) (*entity.Card, error)
}

var (
	_ UserService = (*application.UserService)(nil)
	_ CardService = (*application.CardService)(nil)
)

// fail hands err to the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func failBinding(c *gin.Context, err error) {
	fail(c, apperror.BadRequest("invalid request").WithDetails(validation.ToDetails(err)))
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
