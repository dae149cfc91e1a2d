package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dukerupert/sharenote/internal/handler"
	"github.com/dukerupert/sharenote/internal/middleware"
	"github.com/dukerupert/sharenote/internal/store"
	ws "github.com/dukerupert/sharenote/internal/websocket"
)

// Config holds the HTTP-facing settings of the note store.
type Config struct {
	CORSOrigins []string
	// ShareRate is share lookups allowed per client IP per minute. Zero disables the limit.
	ShareRate int
}

type Server struct {
	db          *sql.DB
	cfg         Config
	hub         *ws.Hub
	noteH       *handler.NoteHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	noteStore := store.NewNoteStore(db)

	return &Server{
		db:          db,
		cfg:         cfg,
		hub:         hub,
		noteH:       handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the change event hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /ws", ws.Handler(s.hub, originHosts(s.cfg.CORSOrigins), s.logger.With("component", "websocket")))

	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes/{id}", s.noteH.Get)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
	mux.Handle("GET /api/notes/share/{shareId}", s.rateLimited(http.HandlerFunc(s.noteH.Share)))

	var h http.Handler = mux
	h = middleware.CORS(s.cfg.CORSOrigins)(h)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		writeStatus(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) rateLimited(h http.Handler) http.Handler {
	if s.cfg.ShareRate <= 0 {
		return h
	}
	return middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.cfg.ShareRate, time.Minute)(h)
}

// originHosts converts CORS origins to the host patterns the websocket
// upgrader matches against.
func originHosts(origins []string) []string {
	var hosts []string
	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
