package handlers

import (
	"time"

	"github.com/oksasatya/mesto-api/internal/domain/entity"
)

// userResponse is the public user shape. It has no password field.
type userResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

type cardResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUser(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, About: u.About, Avatar: u.Avatar, Email: u.Email}
}

func toUsers(users []entity.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUser(&users[i]))
	}
	return out
}

func toCard(c *entity.Card) cardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return cardResponse{ID: c.ID, Name: c.Name, Link: c.Link, Owner: c.OwnerID, Likes: likes, CreatedAt: c.CreatedAt}
}

func toCards(cards []entity.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, toCard(&cards[i]))
	}
	return out
}
