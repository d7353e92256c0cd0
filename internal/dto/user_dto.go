package dto

import "time"

// UserDto is the service-boundary shape of a user. Password carries the
// plaintext on input and is never serialized.
type UserDto struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
