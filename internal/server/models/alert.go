package models

import "time"

// Alert statuses. An alert is created pending and flipped to sent by the
// creating request; delivered and failed are reserved for the external
// delivery worker.
const (
	AlertStatusPending   = "pending"
	AlertStatusSent      = "sent"
	AlertStatusDelivered = "delivered"
	AlertStatusFailed    = "failed"
)

// EmergencyAlert records one alert dispatch. ContactsNotified is a snapshot
// of the contact identifiers supplied at creation; it is not re-validated
// against the contacts table.
type EmergencyAlert struct {
	ID               string
	UserID           string
	Message          string
	Location         string
	Status           string
	ContactsNotified []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
