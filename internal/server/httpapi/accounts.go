package httpapi

import (
	"net/http"
	"time"

	"github.com/udsonbraga/app-lia-2025/internal/server/models"
	"github.com/udsonbraga/app-lia-2025/internal/server/services"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type feedbackRequest struct {
	FeedbackType string `json:"feedback_type"`
	Content      string `json:"content"`
}

type profileRequest struct {
	AvatarURL string `json:"avatar_url"`
}

type userResponse struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	UserMetadata map[string]string `json:"user_metadata"`
}

type sessionUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	AccessToken string              `json:"access_token"`
	User        sessionUserResponse `json:"user"`
}

// authResponse is the signup/signin envelope: the user object plus a
// session block carrying the bearer token.
type authResponse struct {
	User    userResponse    `json:"user"`
	Session sessionResponse `json:"session"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type feedbackResponse struct {
	ID           string    `json:"id"`
	FeedbackType string    `json:"feedback_type"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

func newAuthResponse(result *services.AuthResult) authResponse {
	return authResponse{
		User: userResponse{
			ID:           result.User.ID,
			Email:        result.User.Email,
			Name:         result.User.Name,
			UserMetadata: map[string]string{"name": result.User.Name},
		},
		Session: sessionResponse{
			AccessToken: result.Token,
			User: sessionUserResponse{
				ID:    result.User.ID,
				Email: result.User.Email,
			},
		},
	}
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	result, err := s.users.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, newAuthResponse(result))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	result, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newAuthResponse(result))
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.users.SignOut(r.Context(), bearerToken(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out successfully"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	profile, err := s.users.GetProfile(r.Context(), user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newProfileResponse(user, profile))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	user := requestUser(r)
	profile, err := s.users.UpdateProfile(r.Context(), user.ID, req.AvatarURL)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newProfileResponse(user, profile))
}

// handleFeedback accepts both authenticated and anonymous submissions.
// A present but invalid token is still rejected.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := bearerToken(r); token != "" {
		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		userID = user.ID
	}

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	fb, err := s.users.SubmitFeedback(r.Context(), userID, req.FeedbackType, req.Content)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, feedbackResponse{
		ID:           fb.ID,
		FeedbackType: fb.Type,
		Content:      fb.Content,
		CreatedAt:    fb.CreatedAt,
	})
}

func newProfileResponse(user *models.User, profile *models.Profile) profileResponse {
	return profileResponse{
		ID:        profile.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
