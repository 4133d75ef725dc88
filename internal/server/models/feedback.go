package models

import "time"

// Feedback types accepted by the feedback endpoint.
const (
	FeedbackTypeBug     = "bug"
	FeedbackTypeFeature = "feature"
	FeedbackTypeGeneral = "general"
)

// Feedback is a user-submitted report. UserID is empty for anonymous
// submissions.
type Feedback struct {
	ID        string
	UserID    string
	Type      string
	Content   string
	CreatedAt time.Time
}
