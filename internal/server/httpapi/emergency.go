package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type createAlertRequest struct {
	Message  string   `json:"message"`
	Location string   `json:"location"`
	Contacts []string `json:"contacts"`
}

// createAlertResponse confirms the dispatch: the stored alert id, its
// status after the synchronous pending-to-sent transition, and how many
// contacts were snapshotted.
type createAlertResponse struct {
	Message          string `json:"message"`
	AlertID          string `json:"alertId"`
	Status           string `json:"status"`
	ContactsNotified int    `json:"contacts_notified"`
}

type alertResponse struct {
	ID               string    `json:"id"`
	Message          string    `json:"message"`
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	ContactsNotified []string  `json:"contacts_notified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newAlertResponse(alert *models.EmergencyAlert) alertResponse {
	contacts := alert.ContactsNotified
	if contacts == nil {
		contacts = []string{}
	}
	return alertResponse{
		ID:               alert.ID,
		Message:          alert.Message,
		Location:         alert.Location,
		Status:           alert.Status,
		ContactsNotified: contacts,
		CreatedAt:        alert.CreatedAt,
		UpdatedAt:        alert.UpdatedAt,
	}
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	v := &common.ValidationError{}
	if req.Message == "" {
		v.Add("message", "this field is required")
	}
	contactIDs := make([]uuid.UUID, 0, len(req.Contacts))
	for _, raw := range req.Contacts {
		id, err := uuid.Parse(raw)
		if err != nil {
			v.Add("contacts", "must be a list of valid uuids")
			break
		}
		contactIDs = append(contactIDs, id)
	}
	if !v.Empty() {
		s.respondError(w, r, v)
		return
	}

	alert, notified, err := s.alerts.CreateAlert(r.Context(), requestUser(r).ID, req.Message, req.Location, contactIDs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, createAlertResponse{
		Message:          "Emergency alert sent successfully",
		AlertID:          alert.ID,
		Status:           alert.Status,
		ContactsNotified: notified,
	})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.ListAlerts(r.Context(), requestUser(r).ID, r.URL.Query().Get("status"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, newAlertResponse(alert))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	alert, err := s.alerts.GetAlert(r.Context(), requestUser(r).ID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newAlertResponse(alert))
}
