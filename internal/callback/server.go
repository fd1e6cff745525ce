// Package callback provides an opt-in local HTTP server that captures the
// OAuth authorization redirect. By default it binds to 127.0.0.1.
package callback

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dghubble/oauth1"
)

// Path is where the server expects the provider to redirect to.
const Path = "/callback"

// Result is what the provider sent back after the user approved access.
type Result struct {
	RequestToken string
	Verifier     string
}

// Server receives a single authorization redirect.
type Server struct {
	port     int
	host     string
	logger   *slog.Logger
	mu       sync.RWMutex
	listener net.Listener
	started  bool
	once     sync.Once
	results  chan Result
}

// NewServer returns a Server that has not yet started listening. If host is
// empty, "127.0.0.1" is used. If logger is nil, slog.Default() is used.
// port 0 means the OS assigns a free port.
func NewServer(port int, host string, logger *slog.Logger) *Server {
	if host == "" {
		host = "127.0.0.1"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{port: port, host: host, logger: logger, results: make(chan Result, 1)}
}

// URL is the callback URL to hand to the request token step. Before Start it
// uses the configured port.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	port := s.port
	if s.listener != nil {
		port = s.listener.Addr().(*net.TCPAddr).Port
	}
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(s.host, fmt.Sprint(port)), Path)
}

// Start binds to {host}:{port}, serves in a background goroutine, and shuts
// down when ctx is cancelled. Returns after the listener is open.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("server already started")
	}
	if s.port < 0 {
		return fmt.Errorf("invalid port %d", s.port)
	}

	addr := net.JoinHostPort(s.host, fmt.Sprint(s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.listener = ln
	s.started = true

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET "+Path, s.handleCallback)

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	context.AfterFunc(ctx, func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			s.logger.Error("callback server shutdown", "error", err)
		}
	})

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("callback server error", "error", err)
		}
	}()

	return nil
}

// Wait blocks until the redirect arrives or ctx is done.
func (s *Server) Wait(ctx context.Context) (Result, error) {
	select {
	case r := <-s.results:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Zaim</title></head>
<body>
{{if .Error}}<p>Authorization failed: {{.Error}}</p>
{{else}}<p>Authorization received. You can close this window and return to the terminal.</p>{{end}}
</body>
</html>`))

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	token, verifier, err := oauth1.ParseAuthorizationCallback(r)
	if err != nil {
		s.logger.Debug("bad authorization callback", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, err.Error())
		return
	}

	// Only the first redirect counts; reloads just get the page again.
	s.once.Do(func() {
		s.results <- Result{RequestToken: token, Verifier: verifier}
	})
	s.render(w, "")
}

func (s *Server) render(w http.ResponseWriter, errMsg string) {
	if err := pageTmpl.Execute(w, struct{ Error string }{errMsg}); err != nil {
		s.logger.Error("rendering callback page", "error", err)
	}
}
