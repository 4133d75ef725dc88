// Package services contains server-side business logic. This file
// implements UserService: signup, signin, signout, session
// authentication, profile access, and feedback submission.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/dbx"
	"github.com/udsonbraga/app-lia-2025/internal/server/config"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/repomanager"
	"github.com/udsonbraga/app-lia-2025/internal/shared"
)

// minPasswordLength matches the signup serializer contract of the API.
const minPasswordLength = 6

// sessionTokenBytes is the number of random bytes per session token
// (the hex token string is twice as long).
const sessionTokenBytes = 32

// AuthResult bundles the authenticated user and a fresh session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides account-related operations:
//   - SignUp: create a user with profile and session, atomically
//   - SignIn: verify credentials and mint a session token
//   - SignOut: revoke a session token
//   - Authenticate: resolve a bearer token to its user
//   - GetProfile / UpdateProfile: get-or-create profile access
//   - SubmitFeedback: record user or anonymous feedback
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// SignUp creates a user account. The user row, its profile row, and the
// first session token are written in a single transaction so a partially
// provisioned account can never be observed.
func (s *UserService) SignUp(ctx context.Context, email, password, name string) (*AuthResult, error) {
	v := &common.ValidationError{}
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "enter a valid email address")
	}
	if len(password) < minPasswordLength {
		v.Add("password", fmt.Sprintf("ensure this field has at least %d characters", minPasswordLength))
	}
	if !v.Empty() {
		return nil, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user := &models.User{Email: email, Name: name, PasswordHash: string(hash)}
		user, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.NewValidationError("email", "user with this email already exists")
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		if _, err := s.repomanager.Profiles(tx).Create(ctx, user.ID); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		token, err := s.createSession(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		result = &AuthResult{User: user, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SignIn verifies the credentials and, on success, mints a new session
// token. Unknown emails, wrong passwords, and inactive accounts are all
// reported as ErrorUnauthorized.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}
	token, err := s.createSession(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// SignOut revokes the session token. Revoking an unknown token is a no-op.
func (s *UserService) SignOut(ctx context.Context, token string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer session token to its active user.
// Unknown tokens and inactive accounts yield ErrorUnauthorized; expired
// sessions yield ErrorSessionExpired.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	session, err := s.repomanager.Sessions(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if session.Expires.Before(time.Now()) {
		return nil, common.ErrorSessionExpired
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// GetProfile returns the user's profile, creating the row on first access.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	return repo.Create(ctx, userID)
}

// UpdateProfile sets the avatar URL, provisioning the profile row first
// when it does not exist yet.
func (s *UserService) UpdateProfile(ctx context.Context, userID, avatarURL string) (*models.Profile, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).Update(ctx, userID, avatarURL)
}

// SubmitFeedback records a feedback submission. userID may be empty for
// anonymous feedback.
func (s *UserService) SubmitFeedback(ctx context.Context, userID, feedbackType, content string) (*models.Feedback, error) {
	v := &common.ValidationError{}
	switch feedbackType {
	case models.FeedbackTypeBug, models.FeedbackTypeFeature, models.FeedbackTypeGeneral:
	default:
		v.Add("feedback_type", "must be one of: bug, feature, general")
	}
	if content == "" {
		v.Add("content", "this field is required")
	}
	if !v.Empty() {
		return nil, v
	}
	fb := &models.Feedback{UserID: userID, Type: feedbackType, Content: content}
	fb, err := s.repomanager.Feedback(s.db).Create(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("error creating feedback: %w", err)
	}
	return fb, nil
}

func (s *UserService) createSession(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := shared.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := s.repomanager.Sessions(db).Create(ctx, userID, token, s.sessionValidity); err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
