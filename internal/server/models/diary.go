package models

import "time"

// DiaryEntry is a private journal record. Title is derived from Content
// when the client leaves it blank. Attachments holds freeform inline
// metadata supplied by the client; file objects live in DiaryAttachment
// rows.
type DiaryEntry struct {
	ID          string
	UserID      string
	Title       string
	Content     string
	Date        time.Time
	Mood        string
	Location    string
	Attachments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DiaryAttachment is a file object attached to an entry. StorageKey points
// into the S3 bucket; FileType is the declared MIME type or "unknown".
type DiaryAttachment struct {
	ID         string
	EntryID    string
	Name       string
	StorageKey string
	FileType   string
	CreatedAt  time.Time
}
