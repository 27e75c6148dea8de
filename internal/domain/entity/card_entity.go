package entity

import (
	"strings"
	"time"
)

// Card is a photo posted by a user. Likes holds the ids of users who liked it,
// each at most once.
type Card struct {
	ID        string
	Name      string
	Link      string
	OwnerID   string
	Likes     []string
	CreatedAt time.Time
}

// OwnedBy compares ids by normalized value.
func (c *Card) OwnedBy(userID string) bool {
	return strings.EqualFold(strings.TrimSpace(c.OwnerID), strings.TrimSpace(userID))
}

// LikedBy reports whether userID is in the likes set.
func (c *Card) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if strings.EqualFold(id, userID) {
			return true
		}
	}
	return false
}
