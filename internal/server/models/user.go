// Package models holds the server's persistent domain types.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
