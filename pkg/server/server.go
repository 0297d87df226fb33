// Package server exposes the golite parser over HTTP and WebSocket.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/raymyers/golite/pkg/config"
)

// Server is the parse service
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	Version      string

	// Parser limits applied to every request
	MaxDepth  int
	MaxErrors int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig builds a server configuration from loaded settings
func FromConfig(cfg *config.Config) Config {
	return Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Version:      "dev",
		MaxDepth:     cfg.Parser.MaxDepth,
		MaxErrors:    cfg.Parser.MaxErrors,
	}
}

// New creates a new parse server
func New(cfg Config, logger *slog.Logger) *Server {
	s := &Server{logger: logger, config: cfg}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with request logging
func (s *Server) Handler() http.Handler {
	h := &handler{config: s.config, logger: s.logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/v1/parse", h.handleParse)
	mux.HandleFunc("/api/v1/parse/ast", h.handleSource)
	mux.Handle("/api/v1/parse/ws", &wsHandler{h: h})

	return loggingMiddleware(s.logger, mux)
}

// Start listens and serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting golite parse service", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down golite parse service")
	return s.httpServer.Shutdown(ctx)
}

type ctxKey struct{}

// requestID returns the ID the logging middleware assigned to r
func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// loggingMiddleware tags each request with an ID and logs its outcome
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}
