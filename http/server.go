package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/ingest"
	"github.com/google/uuid"
)

// Server defaults.
const (
	DefaultAddr     = ":8080"
	ShutdownTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
)

// Server is the HTTP API in front of an ingest.IngestService.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// Services used by the routes.
	IngestService ingest.IngestService
	Authenticator ingest.Authenticator

	// Logger receives internal errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewServer returns a new Server with routes registered. Services must be
// assigned before Open is called.
func NewServer() *Server {
	s := &Server{
		router: http.NewServeMux(),
		Addr:   DefaultAddr,
	}
	s.server = &http.Server{
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.Handle("POST /ingest", s.requireAuth(http.HandlerFunc(s.handleIngest)))
	s.router.Handle("POST /from-url", s.requireAuth(http.HandlerFunc(s.handleIngest)))

	return s
}

// Open binds the listener and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() { _ = s.server.Serve(s.ln) }()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP tags every request with a request id and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	r = r.WithContext(newContextWithRequestID(r.Context(), id))

	s.router.ServeHTTP(w, r)
}

// requireAuth rejects requests without a valid bearer token and stores the
// caller identity on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" || s.Authenticator == nil {
			s.Error(w, r, ingest.Errorf(ingest.EUNAUTHORIZED, "Authentication required"))
			return
		}

		id, err := s.Authenticator.Authenticate(r.Context(), token)
		if err != nil {
			s.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ingest.NewContextWithIdentity(r.Context(), id)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// bearerToken returns the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

type requestIDKey struct{}

func newContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id assigned by the server.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
