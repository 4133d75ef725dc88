package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/udsonbraga/app-lia-2025/internal/common"
	"github.com/udsonbraga/app-lia-2025/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// bearerToken extracts the session token from the Authorization header.
// Both "Bearer <token>" and "Token <token>" prefixes are accepted for
// compatibility with older clients.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(common.AuthorizationHeaderName)
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, prefix) {
			return strings.TrimPrefix(header, prefix)
		}
	}
	return ""
}

// requireAuth resolves the bearer session token and stores the user on
// the request context; requests without a valid token get a 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": "authentication credentials were not provided"})
			return
		}
		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestUser returns the authenticated user stored by requireAuth, or
// nil on public routes.
func requestUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// logRequests emits one structured log line per handled request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}
