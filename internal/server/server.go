// Package server exposes the webhook and manual review endpoints over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
)

const maxHeaderBytes = 1 << 20

// Server wraps the HTTP listener and its routes.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	logger     *slog.Logger
}

// Options configures the HTTP listener.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a Server with routing and recovery middleware installed.
func New(opts Options, handlers *Handlers, logger *slog.Logger) *Server {
	router := mux.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:           opts.Addr,
			MaxHeaderBytes: maxHeaderBytes,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			Handler:        recoveryMiddleware(logger, router),
		},
		router: router,
		logger: logger,
	}

	router.HandleFunc("/webhook", handlers.Webhook).Methods(http.MethodPost)
	router.HandleFunc("/review", handlers.ManualReview).Methods(http.MethodPost)
	router.HandleFunc("/", handlers.Health).Methods(http.MethodGet)

	return s
}

// Run starts serving and blocks until the listener stops.
func (s *Server) Run() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// recoveryMiddleware converts handler panics into 500 responses so a single
// request cannot take the process down.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in handler", "error", err, "stack", string(debug.Stack()))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
