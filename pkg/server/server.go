package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arkenidar/dhtml/pkg/demo"
)

// Server is the HTTP/WebSocket host for the demo pages.
type Server struct {
	cfg      *Config
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	httpServer *http.Server

	sessions   map[string]*Session
	sessionsMu sync.Mutex
}

// New creates a Server with the given configuration. A nil config gets
// defaults.
func New(cfg *Config) *Server {
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
		sessions: make(map[string]*Session),
	}
	s.router = s.routes()
	return s
}

// routes builds the chi router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/demo/{name}", s.handleDemo)
	r.Get("/ws/{name}", s.handleWS)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.WriteTimeout,
	}
	s.logger.Info("listening", "address", s.cfg.Address)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections, closes open sessions, and
// waits for in-flight requests within the context's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	s.sessionsMu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.sessionsMu.Unlock()

	for _, sess := range open {
		sess.Close()
	}
	return err
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// handleWS upgrades the connection and runs the session until the
// client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownDemo(name) {
		http.NotFound(w, r)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.logger.Warn("upgrade failed", "error", err)
		return
	}

	sess, err := newSession(conn, name, s.cfg)
	if err != nil {
		s.logger.Error("session setup failed", "demo", name, "error", err)
		conn.Close()
		return
	}

	s.sessionsMu.Lock()
	s.sessions[sess.ID] = sess
	s.sessionsMu.Unlock()
	if s.cfg.OnSessionStart != nil {
		s.cfg.OnSessionStart()
	}
	sess.logger.Info("session opened")

	go sess.writeLoop()
	sess.readLoop() // blocks until the connection closes

	s.sessionsMu.Lock()
	delete(s.sessions, sess.ID)
	s.sessionsMu.Unlock()
}

// knownDemo reports whether name is a registered demo.
func knownDemo(name string) bool {
	for _, n := range demo.Names {
		if n == name {
			return true
		}
	}
	return false
}
