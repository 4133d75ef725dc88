package models

import "time"

// Contact kinds. Safe contacts are reachable by phone/email, emergency
// contacts by a messaging-app id.
const (
	ContactKindSafe      = "safe"
	ContactKindEmergency = "emergency"
)

// Contact is a trusted person owned by exactly one user.
type Contact struct {
	ID           string
	UserID       string
	Kind         string
	Name         string
	Phone        string
	Email        string
	TelegramID   string
	Relationship string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
