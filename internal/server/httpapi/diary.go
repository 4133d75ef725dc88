package httpapi

import (
	"net/http"
	"time"

	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/diary"
	"github.com/udsonbraga/app-lia-2025/internal/server/services"
)

const entryDateFormat = "2006-01-02"

type entryFileRequest struct {
	Name     string `json:"name"`
	FileType string `json:"file_type"`
}

// createEntryRequest accepts "text" as a legacy alias for "content";
// when both are present, "content" wins.
type createEntryRequest struct {
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Text        string             `json:"text"`
	Mood        string             `json:"mood"`
	Location    string             `json:"location"`
	Attachments []string           `json:"attachments"`
	Files       []entryFileRequest `json:"attachment_files"`
}

type updateEntryRequest struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Text        *string  `json:"text"`
	Mood        *string  `json:"mood"`
	Location    *string  `json:"location"`
	Attachments []string `json:"attachments"`
}

type attachmentFileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	UploadURL string    `json:"upload_url,omitempty"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// entryResponse mirrors an entry row; "text" duplicates "content" for
// older clients, and "date" is the calendar day the entry belongs to.
type entryResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Content     string                   `json:"content"`
	Text        string                   `json:"text"`
	Date        string                   `json:"date"`
	Mood        string                   `json:"mood"`
	Location    string                   `json:"location"`
	Attachments []string                 `json:"attachments"`
	Files       []attachmentFileResponse `json:"attachment_files"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func newEntryResponse(view *services.EntryView) entryResponse {
	entry := view.Entry
	attachments := entry.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	resp := entryResponse{
		ID:          entry.ID,
		Title:       entry.Title,
		Content:     entry.Content,
		Text:        entry.Content,
		Date:        entry.Date.Format(entryDateFormat),
		Mood:        entry.Mood,
		Location:    entry.Location,
		Attachments: attachments,
		Files:       []attachmentFileResponse{},
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
	for _, f := range view.Files {
		resp.Files = append(resp.Files, attachmentFileResponse{
			ID:        f.Attachment.ID,
			Name:      f.Attachment.Name,
			URL:       f.URL,
			UploadURL: f.UploadURL,
			FileType:  f.Attachment.FileType,
			CreatedAt: f.Attachment.CreatedAt,
		})
	}
	return resp
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	filter := diary.Filter{
		Mood: r.URL.Query().Get("mood"),
		Date: r.URL.Query().Get("date"),
	}
	views, err := s.diary.ListEntries(r.Context(), requestUser(r).ID, filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	entries := make([]entryResponse, 0, len(views))
	for _, view := range views {
		entries = append(entries, newEntryResponse(view))
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	content := req.Content
	if content == "" {
		content = req.Text
	}
	params := services.EntryParams{
		Title:       req.Title,
		Content:     content,
		Mood:        req.Mood,
		Location:    req.Location,
		Attachments: req.Attachments,
	}
	for _, f := range req.Files {
		params.Files = append(params.Files, services.EntryFileParams{
			Name:        f.Name,
			ContentType: f.FileType,
		})
	}
	view, err := s.diary.CreateEntry(r.Context(), requestUser(r).ID, params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{"entry": newEntryResponse(view)})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := s.diary.GetEntry(r.Context(), requestUser(r).ID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"entry": newEntryResponse(view)})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	content := req.Content
	if content == nil {
		content = req.Text
	}
	params := services.UpdateEntryParams{
		Title:       req.Title,
		Content:     content,
		Mood:        req.Mood,
		Location:    req.Location,
		Attachments: req.Attachments,
	}
	view, err := s.diary.UpdateEntry(r.Context(), requestUser(r).ID, id, params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"entry": newEntryResponse(view)})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.diary.DeleteEntry(r.Context(), requestUser(r).ID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
