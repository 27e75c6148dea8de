package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

// UserIndex keeps a searchable copy of public user profiles in Elasticsearch.
// Password hashes are never indexed.
type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

type userDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	About     string `json:"about"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (x *UserIndex) Put(ctx context.Context, u *entity.User) error {
	doc := userDoc{ID: u.ID, Name: u.Name, About: u.About, Avatar: u.Avatar, Email: u.Email}
	if !u.CreatedAt.IsZero() {
		doc.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search performs a multi_match search on email, name and about.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]entity.User, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name", "about"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.User, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id := h.Source.ID
		if id == "" {
			id = h.ID
		}
		u := entity.User{ID: id, Name: h.Source.Name, About: h.Source.About,
			Avatar: h.Source.Avatar, Email: h.Source.Email}
		if t, err := time.Parse(time.RFC3339Nano, h.Source.CreatedAt); err == nil {
			u.CreatedAt = t
		}
		out = append(out, u)
	}
	return out, nil
}
