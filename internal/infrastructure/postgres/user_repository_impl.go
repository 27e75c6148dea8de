package postgres

import (
	"context"
	"strings"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
	"github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

const userColumns = `id, name, about, avatar, email, password_hash, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email, &u.Password,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, classify(err)
	}
	return u, nil
}

// Create inserts u, assigning a fresh id. Email is stored lower-cased.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = helpers.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, about, avatar, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.About, u.Avatar, u.Email, u.Password)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return classify(err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`,
		helpers.NormalizeObjectID(id))
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = $2, about = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		helpers.NormalizeObjectID(id), name, about)
	return scanUser(row)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET avatar = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		helpers.NormalizeObjectID(id), avatar)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)
