package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	sc "github.com/udsonbraga/app-lia-2025/internal/server/config"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/diary"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/repomanager"
)

// titleLimit is the number of content characters used for a derived title.
const titleLimit = 50

// defaultFileType is recorded when a client declares no MIME type.
const defaultFileType = "unknown"

// EntryFileParams declares one attachment file to be uploaded.
type EntryFileParams struct {
	Name        string
	ContentType string
}

// EntryParams carries the client-supplied fields for a new diary entry.
type EntryParams struct {
	Title       string
	Content     string
	Mood        string
	Location    string
	Attachments []string
	Files       []EntryFileParams
}

// UpdateEntryParams carries a partial update; nil fields keep the stored
// value. A nil or blank title is re-derived from the effective content.
type UpdateEntryParams struct {
	Title       *string
	Content     *string
	Mood        *string
	Location    *string
	Attachments []string
}

// AttachmentView pairs an attachment row with its presigned URLs.
// UploadURL is only set on the create response.
type AttachmentView struct {
	Attachment *models.DiaryAttachment
	URL        string
	UploadURL  string
}

// EntryView pairs an entry with its attachment file objects.
type EntryView struct {
	Entry *models.DiaryEntry
	Files []*AttachmentView
}

// DiaryService provides owner-scoped CRUD over diary entries and their
// attachments. File bytes live in object storage; the service only hands
// out presigned URLs.
type DiaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   Presigner
}

// NewDiaryService constructs a DiaryService with the S3-backed presigner.
func NewDiaryService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *DiaryService {
	return &DiaryService{db: db, repomanager: m, presigner: NewS3Presigner(cfg)}
}

// DeriveTitle builds an entry title from its content: the first 50
// characters plus an ellipsis marker when the content is longer, the
// content verbatim otherwise.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return content
}

// CreateEntry stores a new entry and one attachment row per declared file,
// in a single transaction. The returned view carries presigned upload and
// download URLs for each attachment.
func (s *DiaryService) CreateEntry(ctx context.Context, userID string, params EntryParams) (*EntryView, error) {
	if params.Content == "" {
		return nil, common.NewValidationError("content", "this field is required")
	}
	title := params.Title
	if title == "" {
		title = DeriveTitle(params.Content)
	}

	entry := &models.DiaryEntry{
		UserID:      userID,
		Title:       title,
		Content:     params.Content,
		Mood:        params.Mood,
		Location:    params.Location,
		Attachments: params.Attachments,
	}

	var files []*models.DiaryAttachment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		entry, err = s.repomanager.DiaryEntries(tx).Create(ctx, entry)
		if err != nil {
			return err
		}
		attachmentRepo := s.repomanager.DiaryAttachments(tx)
		for _, f := range params.Files {
			fileType := f.ContentType
			if fileType == "" {
				fileType = defaultFileType
			}
			attachment := &models.DiaryAttachment{
				EntryID:    entry.ID,
				Name:       f.Name,
				StorageKey: RandomStorageKey(),
				FileType:   fileType,
			}
			attachment, err = attachmentRepo.Create(ctx, attachment)
			if err != nil {
				return err
			}
			files = append(files, attachment)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	view := &EntryView{Entry: entry}
	for _, attachment := range files {
		uploadURL, err := s.presigner.PresignPut(ctx, attachment.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("error presigning upload: %w", err)
		}
		url, err := s.presigner.PresignGet(ctx, attachment.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("error presigning download: %w", err)
		}
		view.Files = append(view.Files, &AttachmentView{
			Attachment: attachment,
			URL:        url,
			UploadURL:  uploadURL,
		})
	}
	return view, nil
}

// ListEntries returns the user's entries, newest first, each with its
// attachment file objects.
func (s *DiaryService) ListEntries(ctx context.Context, userID string, filter diary.Filter) ([]*EntryView, error) {
	entries, err := s.repomanager.DiaryEntries(s.db).ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	views := make([]*EntryView, 0, len(entries))
	for _, entry := range entries {
		view, err := s.attachView(ctx, entry)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetEntry returns an owned entry with its attachments or ErrorNotFound.
func (s *DiaryService) GetEntry(ctx context.Context, userID, id string) (*EntryView, error) {
	entry, err := s.repomanager.DiaryEntries(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.attachView(ctx, entry)
}

// UpdateEntry overlays the supplied fields on an owned entry. A blank or
// omitted title is recomputed from the effective content, so an update
// that leaves the content unchanged derives the same title as the create
// path did.
func (s *DiaryService) UpdateEntry(ctx context.Context, userID, id string, params UpdateEntryParams) (*EntryView, error) {
	entry, err := s.repomanager.DiaryEntries(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Content != nil {
		if *params.Content == "" {
			return nil, common.NewValidationError("content", "this field may not be blank")
		}
		entry.Content = *params.Content
	}
	if params.Mood != nil {
		entry.Mood = *params.Mood
	}
	if params.Location != nil {
		entry.Location = *params.Location
	}
	if params.Attachments != nil {
		entry.Attachments = params.Attachments
	}

	title := ""
	if params.Title != nil {
		title = *params.Title
	}
	if title == "" {
		title = DeriveTitle(entry.Content)
	}
	entry.Title = title

	entry, err = s.repomanager.DiaryEntries(s.db).Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	return s.attachView(ctx, entry)
}

// DeleteEntry removes an owned entry; attachment rows cascade.
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.repomanager.DiaryEntries(s.db).Delete(ctx, userID, id)
}

func (s *DiaryService) attachView(ctx context.Context, entry *models.DiaryEntry) (*EntryView, error) {
	attachments, err := s.repomanager.DiaryAttachments(s.db).ListByEntry(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing attachments: %w", err)
	}
	view := &EntryView{Entry: entry}
	for _, attachment := range attachments {
		url, err := s.presigner.PresignGet(ctx, attachment.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("error presigning download: %w", err)
		}
		view.Files = append(view.Files, &AttachmentView{Attachment: attachment, URL: url})
	}
	return view, nil
}
