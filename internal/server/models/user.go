package models

import "time"

// User is an account row. Email is the login identifier and is unique.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the 1:1 companion row provisioned at signup.
type Profile struct {
	ID        string
	UserID    string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
