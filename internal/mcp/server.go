package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer, or
// "" when none was set.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// NewHTTPHandler serves s over streamable HTTP. userID reports the caller
// resolved by the surrounding HTTP middleware; tools then answer for that
// caller instead of Options.UserID.
func NewHTTPHandler(s *server.MCPServer, userID func(*http.Request) string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithHTTPContextFunc(requestUser(userID)))
}

func requestUser(userID func(*http.Request) string) func(context.Context, *http.Request) context.Context {
	return func(ctx context.Context, r *http.Request) context.Context {
		if id := userID(r); id != "" {
			return WithUserID(ctx, id)
		}
		return ctx
	}
}

// Options configures the MCP server.
type Options struct {
	// UserID is queried when the request context carries no user.
	UserID string
	// Location decides which calendar day "today" is.
	Location *time.Location
	Version  string
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, opts Options, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Liftium", opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Liftium strength training tracker. Query today's planned workout, the weekly split, logged sessions, and per-exercise progress. All data is scoped to one user."),
	)

	h := newHandlers(ds, opts, log)

	s.AddTools(
		server.ServerTool{Tool: toolGetToday, Handler: h.getToday},
		server.ServerTool{Tool: toolGetSplit, Handler: h.getSplit},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
	)

	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.today},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	userID string
	loc    *time.Location
	now    func() time.Time
	log    *slog.Logger
}

func newHandlers(ds DataSource, opts Options, log *slog.Logger) *handlers {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &handlers{ds: ds, userID: opts.UserID, loc: loc, now: time.Now, log: log}
}

var resToday = mcp.NewResource(
	"liftium://today",
	"Today",
	mcp.WithResourceDescription("Today's planned workout with its exercises, the status label, and a motivational message"),
	mcp.WithMIMEType("application/json"),
)
