package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Store supplies a user's base collections. *storage.DB, *localdb.DB and
// *seed.Store satisfy it.
type Store interface {
	LoadDataset(ctx context.Context, userID string) (*models.Dataset, error)
	UserIDByEmail(ctx context.Context, email string) (string, bool, error)
}

// statsStore is implemented by stores that can report row counts.
type statsStore interface {
	GetDataStats(ctx context.Context, userID string) (*storage.DataStats, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	log      *slog.Logger
	apiKey   string
	userID   string
	loc      *time.Location
	now      func() time.Time
	router   chi.Router
	identity func(http.Handler) http.Handler
}

// New creates a new Server with all routes configured. userID is the account
// served to requests without a tailnet identity; loc decides what "today" is.
func New(store Store, userID string, loc *time.Location, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		userID: userID,
		loc:    loc,
		now:    time.Now,
		router: chi.NewRouter(),
	}
	s.identity = DevIdentity(userID)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.resolveIdentity)
		r.Get("/me", s.handleMe)
		r.Get("/today", s.handleToday)
		r.Get("/split", s.handleActiveSplit)
		r.Get("/splits/{id}", s.handleSplit)
		r.Get("/sessions", s.handleSessions)
		r.Get("/sessions/{id}", s.handleSession)
		r.Get("/progress", s.handleProgress)
		r.Get("/exercises/{id}/progress", s.handleExerciseProgress)
		r.Get("/stats", s.handleStats)
		r.Get("/dataset", s.handleDataset)
	})
}

// SetTailscale switches identity resolution to tailnet WhoIs lookups.
func (s *Server) SetTailscale(lc WhoIser) {
	s.identity = TailscaleIdentity(lc, s.store, s.log)
}

// SetMCP mounts an MCP handler at /mcp behind the API key. The handler sees
// the same caller identity as /api/v1, readable with UserIDFromRequest.
func (s *Server) SetMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey), s.resolveIdentity).Handle("/mcp", h)
}

// resolveIdentity applies the current identity middleware. It is looked up
// per request so SetTailscale can swap it after New.
func (s *Server) resolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.identity(next).ServeHTTP(w, r)
	})
}
