package models

import "time"

// User is the authenticated identity delivered by the auth collaborator.
type User struct {
	ID    string
	Email string
}

// Profile is the single per-user remote record mirroring the settings store.
type Profile struct {
	UserID     string
	Language   Language
	Currency   Currency
	DateFormat DateFormat
	UpdatedAt  time.Time
}
