// Package model defines domain entities for the application.
package model

import "time"

// User represents a directory user record.
// ID and CreatedAt are assigned by the database.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
