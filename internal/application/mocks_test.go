package application

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == "" {
		u.ID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	}
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	args := m.Called(ctx, id, name, about)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	args := m.Called(ctx, id, avatar)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

type mockCardRepo struct{ mock.Mock }

func (m *mockCardRepo) Create(ctx context.Context, c *entity.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCardRepo) List(ctx context.Context) ([]entity.Card, error) {
	args := m.Called(ctx)
	cards, _ := args.Get(0).([]entity.Card)
	return cards, args.Error(1)
}

func (m *mockCardRepo) GetByID(ctx context.Context, id string) (*entity.Card, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Card)
	return c, args.Error(1)
}

func (m *mockCardRepo) DeleteOwned(ctx context.Context, id, ownerID string) (*entity.Card, error) {
	args := m.Called(ctx, id, ownerID)
	c, _ := args.Get(0).(*entity.Card)
	return c, args.Error(1)
}

func (m *mockCardRepo) AddLike(ctx context.Context, id, userID string) (*entity.Card, error) {
	args := m.Called(ctx, id, userID)
	c, _ := args.Get(0).(*entity.Card)
	return c, args.Error(1)
}

func (m *mockCardRepo) RemoveLike(ctx context.Context, id, userID string) (*entity.Card, error) {
	args := m.Called(ctx, id, userID)
	c, _ := args.Get(0).(*entity.Card)
	return c, args.Error(1)
}

type mockSearcher struct{ mock.Mock }

func (m *mockSearcher) Put(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockSearcher) Search(ctx context.Context, q string, size int) ([]entity.User, error) {
	args := m.Called(ctx, q, size)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectPath, contentType, r)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

type mockRevoker struct{ mock.Mock }

func (m *mockRevoker) Revoke(ctx context.Context, jti string, exp time.Time) error {
	return m.Called(ctx, jti, exp).Error(0)
}
