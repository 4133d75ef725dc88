package models

import "time"

// Session is an opaque bearer credential row. The token itself is random
// hex; deleting the row revokes the session.
type Session struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
