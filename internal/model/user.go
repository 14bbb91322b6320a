// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Users are created by registration
// and never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
