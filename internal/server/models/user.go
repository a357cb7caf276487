// Package models defines server-side data models persisted in the database
// and returned by the HTTP API.
package models

import "time"

// User is an account allowed to log in. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           string    `json:"user_id"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"user_role"`
	CreatedAt    time.Time `json:"created_at"`
}
