package router

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
	"github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

// memUsers and memCards are in-memory repositories that count every call,
// so tests can assert that a request never reached the store.
type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	calls int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) touch() { m.calls++ }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	for _, existing := range m.byID {
		if existing.Email == strings.ToLower(u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = helpers.NewObjectID()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) List(context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	out := make([]entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	u, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	for _, u := range m.byID {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) update(id string, fn func(*entity.User)) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	u, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(u)
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id, name, about string) (*entity.User, error) {
	return m.update(id, func(u *entity.User) { u.Name, u.About = name, about })
}

func (m *memUsers) UpdateAvatar(_ context.Context, id, avatar string) (*entity.User, error) {
	return m.update(id, func(u *entity.User) { u.Avatar = avatar })
}

type memCards struct {
	mu    sync.Mutex
	byID  map[string]*entity.Card
	calls int
}

func newMemCards() *memCards { return &memCards{byID: map[string]*entity.Card{}} }

func (m *memCards) Create(_ context.Context, c *entity.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c.ID = helpers.NewObjectID()
	c.Likes = []string{}
	c.CreatedAt = time.Now()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCards) List(context.Context) ([]entity.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]entity.Card, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCards) GetByID(_ context.Context, id string) (*entity.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCards) DeleteOwned(_ context.Context, id, ownerID string) (*entity.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok || c.OwnerID != helpers.NormalizeObjectID(ownerID) {
		return nil, repository.ErrNotFound
	}
	delete(m.byID, c.ID)
	return c, nil
}

func (m *memCards) AddLike(_ context.Context, id, userID string) (*entity.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !c.LikedBy(userID) {
		c.Likes = append(c.Likes, userID)
	}
	cp := *c
	cp.Likes = append([]string{}, c.Likes...)
	return &cp, nil
}

func (m *memCards) RemoveLike(_ context.Context, id, userID string) (*entity.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.byID[helpers.NormalizeObjectID(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := make([]string, 0, len(c.Likes))
	for _, l := range c.Likes {
		if l != userID {
			kept = append(kept, l)
		}
	}
	c.Likes = kept
	cp := *c
	cp.Likes = append([]string{}, kept...)
	return &cp, nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memCards) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }
