// Package rest exposes the notesvc API over HTTP: OTP and password
// authentication under /api/auth, bearer-guarded note CRUD under /api/notes,
// plus /health and /metrics.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hwdelite/notesvc/internal/logging"
	"github.com/hwdelite/notesvc/internal/server/auth"
	"github.com/hwdelite/notesvc/internal/server/config"
	"github.com/hwdelite/notesvc/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address        string
	logger         logging.Logger
	auth           *services.AuthService
	notes          *services.NoteService
	jwtSecret      []byte
	allowedOrigins []string
	limiter        *ipRateLimiter
}

func NewServer(cfg *config.Config, l logging.Logger, as *services.AuthService, ns *services.NoteService) *Server {
	return &Server{
		address:        cfg.Address,
		logger:         l.With("module", "rest_server"),
		auth:           as,
		notes:          ns,
		jwtSecret:      []byte(cfg.JWTSecret),
		allowedOrigins: cfg.AllowedOrigins,
		limiter:        newIPRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
	}
}

func (s *Server) parseToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
