// Package httpapi exposes the REST surface: request parsing, bearer-token
// authentication and response shaping. Handlers stay thin; all entity and
// session logic lives in the services package.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/tuanis-rp/roleplay-api/internal/logging"
	"github.com/tuanis-rp/roleplay-api/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	usuarios *services.UsuarioService
	auth     *services.AuthService
	validate *validator.Validate
}

func NewServer(a string, l logging.Logger, us *services.UsuarioService, as *services.AuthService) *Server {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		usuarios: us,
		auth:     as,
		validate: validator.New(),
	}
}

// Router builds the chi routing tree. Split out from Run so tests can mount
// it on an httptest server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleRoot)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/profile", s.handleProfile)
			r.Post("/logout", s.handleLogout)
		})
	})

	r.Route("/usuarios", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/", s.handleCreateUsuario)
		r.Get("/", s.handleListUsuarios)
		r.Get("/{cedula}", s.handleGetUsuario)
		r.Put("/{cedula}", s.handleUpdateUsuario)
		r.Delete("/{cedula}", s.handleDeleteUsuario)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API Tuanis Roleplay funcionando"})
}
