package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

// UserSearcher is the optional full-text index of user profiles.
type UserSearcher interface {
	Put(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, q string, size int) ([]entity.User, error)
}

// AvatarUploader stores an uploaded image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// JobPublisher puts background jobs (welcome emails) on a queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// TokenRevoker records signed-out token ids until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
}
