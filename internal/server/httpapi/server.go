// Package httpapi is the HTTP boundary of the authentication service. It
// validates requests, invokes the authentication core, and maps its error
// kinds to transport statuses and stable machine-readable codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/reacademix/authd/internal/logging"
	"github.com/reacademix/authd/internal/server/auth"
	"github.com/reacademix/authd/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Authenticator is the slice of the auth service used by this layer.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type HTTPServer struct {
	address string
	auth    Authenticator
	codec   *auth.TokenCodec
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, a Authenticator, codec *auth.TokenCodec) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    a,
		codec:   codec,
	}
}

// Handler builds the route table with the shared middleware chain applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/me", s.handleMe)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.withRequestID(s.withRequestLogging(mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
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
