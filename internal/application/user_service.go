package application

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
	repo "github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/apperror"
	"github.com/oksasatya/mesto-api/pkg/helpers"
	"github.com/oksasatya/mesto-api/pkg/mailer"
	mailtpl "github.com/oksasatya/mesto-api/pkg/mailer/templates"
)

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash, _ = helpers.HashPassword("not-a-real-password")

// ProfileDefaults are applied at signup when optional fields are omitted.
type ProfileDefaults struct {
	Name   string
	About  string
	Avatar string
}

type UserService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	Defaults ProfileDefaults
	AppName  string

	// optional integrations, nil when not configured
	Search  UserSearcher
	Avatars AvatarUploader
	Jobs    JobPublisher
	Revoker TokenRevoker
}

type UserOption func(*UserService)

func WithSearch(s UserSearcher) UserOption    { return func(u *UserService) { u.Search = s } }
func WithAvatars(a AvatarUploader) UserOption { return func(u *UserService) { u.Avatars = a } }
func WithJobs(j JobPublisher) UserOption      { return func(u *UserService) { u.Jobs = j } }
func WithRevoker(r TokenRevoker) UserOption   { return func(u *UserService) { u.Revoker = r } }
func WithAppName(name string) UserOption      { return func(u *UserService) { u.AppName = name } }

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, defaults ProfileDefaults, opts ...UserOption) *UserService {
	s := &UserService{Repo: r, JWT: jwt, Logger: logger, Defaults: defaults}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, MsgUserNotFound)
	}
	return u, nil
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// Signup creates an account. Empty optional fields take the configured defaults.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u := &entity.User{
		Name:     firstNonEmpty(in.Name, s.Defaults.Name),
		About:    firstNonEmpty(in.About, s.Defaults.About),
		Avatar:   firstNonEmpty(in.Avatar, s.Defaults.Avatar),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeError(err, MsgUserNotFound)
	}

	s.indexUser(ctx, u)
	s.publishWelcome(ctx, u)
	return u, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *helpers.Claims, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if !apperror.Is(storeError(err, ""), apperror.KindNotFound) {
			return "", nil, apperror.Internal(err)
		}
		_ = helpers.CompareHashAndPassword(dummyHash, password)
		return "", nil, apperror.Unauthorized(MsgInvalidCredentials)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", nil, apperror.Unauthorized(MsgInvalidCredentials)
	}
	token, claims, err := s.JWT.Generate(u.ID)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, claims, nil
}

// Signout revokes the token id when a revocation store is configured.
func (s *UserService) Signout(ctx context.Context, claims *helpers.Claims) error {
	if s.Revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.Revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	u, err := s.Repo.UpdateProfile(ctx, id, name, about)
	if err != nil {
		return nil, storeError(err, MsgUserNotFound)
	}
	s.indexUser(ctx, u)
	return u, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	u, err := s.Repo.UpdateAvatar(ctx, id, avatar)
	if err != nil {
		return nil, storeError(err, MsgUserNotFound)
	}
	s.indexUser(ctx, u)
	return u, nil
}

// UploadAvatar stores the image in object storage and points the avatar at it.
func (s *UserService) UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, apperror.New(apperror.KindUnavailable, "avatar upload is not configured")
	}
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, storeError(err, MsgUserNotFound)
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join("avatars", helpers.NormalizeObjectID(id), uuid.NewString()+ext)
	url, err := s.Avatars.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.UpdateAvatar(ctx, id, url)
}

// SearchUsers returns an empty result when search is not configured.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error) {
	if s.Search == nil {
		return []entity.User{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	users, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Put(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}

func (s *UserService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.AppName, u.Name, u.Email),
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}

// firstNonEmpty substitutes def only for an omitted value. Blank values are
// rejected by request validation.
func firstNonEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
