// Package httpapi exposes the REST surface of the server: account and
// session management, safe and emergency contacts, the diary, and
// emergency alerts. Handlers decode JSON requests, delegate to the
// service layer, and serialize the documented response shapes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/udsonbraga/app-lia-2025/internal/logging"
	"github.com/udsonbraga/app-lia-2025/internal/server/config"
	"github.com/udsonbraga/app-lia-2025/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the HTTP API over the service layer.
type Server struct {
	address  string
	logger   logging.Logger
	users    *services.UserService
	contacts *services.ContactService
	diary    *services.DiaryService
	alerts   *services.AlertService
}

// NewServer constructs the HTTP server.
func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, contacts *services.ContactService,
	diary *services.DiaryService, alerts *services.AlertService) *Server {
	return &Server{
		address:  cfg.EndpointAddrHTTP,
		logger:   logger.With("module", "httpapi"),
		users:    users,
		contacts: contacts,
		diary:    diary,
		alerts:   alerts,
	}
}

// Router assembles the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/signup", s.handleSignUp)
		r.Post("/signin", s.handleSignIn)
		r.Post("/feedback/", s.handleFeedback)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/signout", s.handleSignOut)
			r.Get("/profile/", s.handleGetProfile)
			r.Put("/profile/", s.handleUpdateProfile)
		})
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleListSafeContacts)
		r.Post("/", s.handleCreateSafeContact)
		r.Get("/emergency/", s.handleListEmergencyContacts)
		r.Post("/emergency/", s.handleCreateEmergencyContact)
		r.Get("/emergency/{id}/", s.handleGetEmergencyContact)
		r.Put("/emergency/{id}/", s.handleUpdateEmergencyContact)
		r.Delete("/emergency/{id}/", s.handleDeleteEmergencyContact)
		r.Get("/{id}/", s.handleGetSafeContact)
		r.Put("/{id}/", s.handleUpdateSafeContact)
		r.Delete("/{id}/", s.handleDeleteSafeContact)
	})

	r.Route("/diary", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleListEntries)
		r.Post("/", s.handleCreateEntry)
		r.Get("/{id}/", s.handleGetEntry)
		r.Put("/{id}/", s.handleUpdateEntry)
		r.Delete("/{id}/", s.handleDeleteEntry)
	})

	r.Route("/emergency", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/alert", s.handleCreateAlert)
		r.Get("/alerts/", s.handleListAlerts)
		r.Get("/alerts/{id}/", s.handleGetAlert)
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
