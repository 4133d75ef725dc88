package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/repomanager"
)

// ContactParams carries the client-supplied contact fields. Which
// identifier field is required depends on the contact kind.
type ContactParams struct {
	Name         string
	Phone        string
	Email        string
	TelegramID   string
	Relationship string
}

// ContactService provides owner-scoped CRUD over safe and emergency
// contacts.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewContactService constructs a ContactService.
func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

func validateContact(kind string, params ContactParams) error {
	v := &common.ValidationError{}
	if params.Name == "" {
		v.Add("name", "this field is required")
	}
	switch kind {
	case models.ContactKindSafe:
		if params.Phone == "" && params.Email == "" {
			v.Add("phone", "a phone number or email is required")
		}
	case models.ContactKindEmergency:
		if params.TelegramID == "" {
			v.Add("telegram_id", "this field is required")
		}
	}
	if !v.Empty() {
		return v
	}
	return nil
}

// List returns the user's contacts of the given kind, ordered by name.
func (s *ContactService) List(ctx context.Context, userID, kind string) ([]*models.Contact, error) {
	result, err := s.repomanager.Contacts(s.db).ListByUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return result, nil
}

// Create validates and stores a new contact for the user.
func (s *ContactService) Create(ctx context.Context, userID, kind string, params ContactParams) (*models.Contact, error) {
	if err := validateContact(kind, params); err != nil {
		return nil, err
	}
	contact := &models.Contact{
		UserID:       userID,
		Kind:         kind,
		Name:         params.Name,
		Phone:        params.Phone,
		Email:        params.Email,
		TelegramID:   params.TelegramID,
		Relationship: params.Relationship,
	}
	contact, err := s.repomanager.Contacts(s.db).Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}
	return contact, nil
}

// Get returns an owned contact or ErrorNotFound.
func (s *ContactService) Get(ctx context.Context, userID, kind, id string) (*models.Contact, error) {
	return s.repomanager.Contacts(s.db).Get(ctx, userID, kind, id)
}

// Update validates and rewrites an owned contact.
func (s *ContactService) Update(ctx context.Context, userID, kind, id string, params ContactParams) (*models.Contact, error) {
	if err := validateContact(kind, params); err != nil {
		return nil, err
	}
	contact := &models.Contact{
		ID:           id,
		UserID:       userID,
		Kind:         kind,
		Name:         params.Name,
		Phone:        params.Phone,
		Email:        params.Email,
		TelegramID:   params.TelegramID,
		Relationship: params.Relationship,
	}
	return s.repomanager.Contacts(s.db).Update(ctx, contact)
}

// Delete removes an owned contact or returns ErrorNotFound.
func (s *ContactService) Delete(ctx context.Context, userID, kind, id string) error {
	return s.repomanager.Contacts(s.db).Delete(ctx, userID, kind, id)
}
