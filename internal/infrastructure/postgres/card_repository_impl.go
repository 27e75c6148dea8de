package postgres

import (
	"context"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
	"github.com/oksasatya/mesto-api/internal/domain/repository"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

const cardColumns = `id, name, link, owner_id, likes, created_at`

type CardRepository struct {
	db DBTX
}

func NewCardRepository(db DBTX) *CardRepository {
	return &CardRepository{db: db}
}

func scanCard(row rowScanner) (*entity.Card, error) {
	c := &entity.Card{}
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &c.OwnerID, &c.Likes, &c.CreatedAt); err != nil {
		return nil, classify(err)
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c, nil
}

func (r *CardRepository) Create(ctx context.Context, c *entity.Card) error {
	c.ID = helpers.NewObjectID()
	c.OwnerID = helpers.NormalizeObjectID(c.OwnerID)
	c.Likes = []string{}
	row := r.db.QueryRow(ctx, `
		INSERT INTO cards (id, name, link, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, c.ID, c.Name, c.Link, c.OwnerID)

	if err := row.Scan(&c.CreatedAt); err != nil {
		return classify(err)
	}
	return nil
}

func (r *CardRepository) List(ctx context.Context) ([]entity.Card, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY created_at, id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	cards := make([]entity.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return cards, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*entity.Card, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`,
		helpers.NormalizeObjectID(id))
	return scanCard(row)
}

// DeleteOwned removes the card only when ownerID still owns it.
// ErrNotFound covers both a missing card and an owner mismatch.
func (r *CardRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*entity.Card, error) {
	row := r.db.QueryRow(ctx, `
		DELETE FROM cards
		WHERE id = $1 AND owner_id = $2
		RETURNING `+cardColumns,
		helpers.NormalizeObjectID(id), helpers.NormalizeObjectID(ownerID))
	return scanCard(row)
}

// AddLike appends userID to likes unless already present.
func (r *CardRepository) AddLike(ctx context.Context, id, userID string) (*entity.Card, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE cards
		SET likes = CASE WHEN $2 = ANY(likes) THEN likes ELSE array_append(likes, $2) END
		WHERE id = $1
		RETURNING `+cardColumns,
		helpers.NormalizeObjectID(id), helpers.NormalizeObjectID(userID))
	return scanCard(row)
}

// RemoveLike drops userID from likes; a no-op when absent.
func (r *CardRepository) RemoveLike(ctx context.Context, id, userID string) (*entity.Card, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE cards
		SET likes = array_remove(likes, $2)
		WHERE id = $1
		RETURNING `+cardColumns,
		helpers.NormalizeObjectID(id), helpers.NormalizeObjectID(userID))
	return scanCard(row)
}

var _ repository.CardRepository = (*CardRepository)(nil)
