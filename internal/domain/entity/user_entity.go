package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never leave the service layer.
type User struct {
	ID        string
	Name      string
	About     string
	Avatar    string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
