package callback

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/clipbridge/clipbridge/internal/httpserver"
	"github.com/clipbridge/clipbridge/internal/logging"
	"github.com/clipbridge/clipbridge/internal/middleware"
	"github.com/clipbridge/clipbridge/internal/models"
)

// Handler completes an OAuth flow from a redirect's path and query.
type Handler interface {
	HandleCallback(ctx context.Context, callbackPath string, query url.Values) (models.Session, error)
}

// Result is the outcome of one handled callback.
type Result struct {
	Session models.Session
	Err     error
}

// Server is the short-lived localhost listener that receives OAuth
// redirects. It recognizes the generic login callback route and the
// platform-specific one, hands the parameters to the auth orchestrator, and
// reports each outcome on Results so the CLI can stop listening.
type Server struct {
	inner   *httpserver.Server
	mux     *http.ServeMux
	handler Handler
	results chan Result
}

// NewServer constructs a listener on the provided port.
func NewServer(port int, handler Handler, logger *slog.Logger) *Server {
	if handler == nil {
		panic("callback: handler must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		handler: handler,
		results: make(chan Result, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/callback", s.handle)
	mux.HandleFunc("/auth/callback/", s.handle)
	mux.HandleFunc("/youtube/callback", s.handle)
	mux.HandleFunc("/youtube/callback/", s.handle)

	s.mux = mux
	s.inner = httpserver.New(port, middleware.RequestLogger(logger)(mux))
	return s
}

// Start begins serving and blocks until Shutdown.
func (s *Server) Start() error {
	return s.inner.Start()
}

// Shutdown gracefully terminates the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

// Results delivers the outcome of each handled callback.
func (s *Server) Results() <-chan Result {
	return s.results
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	session, err := s.handler.HandleCallback(ctx, r.URL.Path, r.URL.Query())
	if err != nil {
		logger.Warn("callback rejected", "path", r.URL.Path, "error", err)
		respondHTML(w, http.StatusBadRequest, "Authentication Failed", err.Error())
	} else {
		respondHTML(w, http.StatusOK, "All set", "You can close this window and return to the terminal.")
	}

	select {
	case s.results <- Result{Session: session, Err: err}:
	default:
	}
}

func respondHTML(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!doctype html><html><head><title>ClipBridge</title></head><body><h1>%s</h1><p>%s</p></body></html>",
		html.EscapeString(title), html.EscapeString(detail))
}
