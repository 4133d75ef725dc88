package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/services"
)

type contactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	TelegramID   string `json:"telegram_id"`
	Relationship string `json:"relationship"`
}

// safeContactResponse exposes the phone/email fields of a safe contact.
type safeContactResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// emergencyContactResponse exposes the messaging id of an emergency contact.
type emergencyContactResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TelegramID   string    `json:"telegram_id"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newSafeContactResponse(c *models.Contact) safeContactResponse {
	return safeContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Relationship: c.Relationship,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func newEmergencyContactResponse(c *models.Contact) emergencyContactResponse {
	return emergencyContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		TelegramID:   c.TelegramID,
		Relationship: c.Relationship,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// pathID extracts and validates the uuid path parameter. A malformed id
// maps to 404, same as a missing row.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", common.ErrorNotFound
	}
	return id, nil
}

func (c contactRequest) params() services.ContactParams {
	return services.ContactParams{
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		TelegramID:   c.TelegramID,
		Relationship: c.Relationship,
	}
}

func (s *Server) handleListSafeContacts(w http.ResponseWriter, r *http.Request) {
	s.listContacts(w, r, models.ContactKindSafe)
}

func (s *Server) handleListEmergencyContacts(w http.ResponseWriter, r *http.Request) {
	s.listContacts(w, r, models.ContactKindEmergency)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request, kind string) {
	contacts, err := s.contacts.List(r.Context(), requestUser(r).ID, kind)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.contactList(kind, contacts))
}

func (s *Server) contactList(kind string, contacts []*models.Contact) any {
	if kind == models.ContactKindEmergency {
		out := make([]emergencyContactResponse, 0, len(contacts))
		for _, c := range contacts {
			out = append(out, newEmergencyContactResponse(c))
		}
		return out
	}
	out := make([]safeContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, newSafeContactResponse(c))
	}
	return out
}

func (s *Server) contactBody(kind string, c *models.Contact) any {
	if kind == models.ContactKindEmergency {
		return newEmergencyContactResponse(c)
	}
	return newSafeContactResponse(c)
}

func (s *Server) handleCreateSafeContact(w http.ResponseWriter, r *http.Request) {
	s.createContact(w, r, models.ContactKindSafe)
}

func (s *Server) handleCreateEmergencyContact(w http.ResponseWriter, r *http.Request) {
	s.createContact(w, r, models.ContactKindEmergency)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request, kind string) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	contact, err := s.contacts.Create(r.Context(), requestUser(r).ID, kind, req.params())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, s.contactBody(kind, contact))
}

func (s *Server) handleGetSafeContact(w http.ResponseWriter, r *http.Request) {
	s.getContact(w, r, models.ContactKindSafe)
}

func (s *Server) handleGetEmergencyContact(w http.ResponseWriter, r *http.Request) {
	s.getContact(w, r, models.ContactKindEmergency)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request, kind string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	contact, err := s.contacts.Get(r.Context(), requestUser(r).ID, kind, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.contactBody(kind, contact))
}

func (s *Server) handleUpdateSafeContact(w http.ResponseWriter, r *http.Request) {
	s.updateContact(w, r, models.ContactKindSafe)
}

func (s *Server) handleUpdateEmergencyContact(w http.ResponseWriter, r *http.Request) {
	s.updateContact(w, r, models.ContactKindEmergency)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request, kind string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	contact, err := s.contacts.Update(r.Context(), requestUser(r).ID, kind, id, req.params())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.contactBody(kind, contact))
}

func (s *Server) handleDeleteSafeContact(w http.ResponseWriter, r *http.Request) {
	s.deleteContact(w, r, models.ContactKindSafe)
}

func (s *Server) handleDeleteEmergencyContact(w http.ResponseWriter, r *http.Request) {
	s.deleteContact(w, r, models.ContactKindEmergency)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request, kind string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.contacts.Delete(r.Context(), requestUser(r).ID, kind, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
