package mcp

import (
	"context"
	"net/http"
	"os"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/internal/summary"

	"github.com/mark3labs/mcp-go/server"
)

//go:generate mockgen -source=$GOFILE -destination=server_mocks_test.go -package=mcp

type summaryReader interface {
	GetDailySummary(ctx context.Context, userID int, date string) (*summary.Summary, error)
}

type sessionsReader interface {
	GetActiveSession(ctx context.Context, userID int) (*sessions.Session, error)
	GetSession(ctx context.Context, userID, sessionID int) (*sessions.Session, error)
	GetSessionsByDate(ctx context.Context, userID int, date string) ([]sessions.Session, error)
	ListLogs(ctx context.Context, sessionID int) ([]sessions.ExerciseLog, error)
}

// Server exposes read only fittrack data to MCP clients. Over HTTP the user comes
// from the authenticated request; over stdio a fixed user is configured.
type Server struct {
	summary     summaryReader
	sessions    sessionsReader
	fixedUserID int
	NowFunc     func() string
}

func NewServer(summary summaryReader, sessions sessionsReader) *Server {
	return &Server{
		summary:  summary,
		sessions: sessions,
		NowFunc:  todayUTC,
	}
}

// WithUserID makes every tool call act as the given user; used for stdio.
func (s *Server) WithUserID(userID int) *Server {
	s.fixedUserID = userID
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("fittrack", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.dailySummaryTool())
	srv.AddTool(s.sessionsByDateTool())
	srv.AddTool(s.activeSessionTool())
	srv.AddTool(s.sessionLogsTool())

	return srv
}

// HTTPHandler serves MCP streamable HTTP; mount it behind the auth middleware.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(
		s.MCPServer(),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if userID, ok := auth.UserIDFromContext(r.Context()); ok {
				return auth.ContextWithUserID(ctx, userID)
			}
			return ctx
		}),
	)
}

// ServeStdio blocks until ctx is cancelled or stdin is closed.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.MCPServer())
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) userID(ctx context.Context) (int, bool) {
	if userID, ok := auth.UserIDFromContext(ctx); ok {
		return userID, true
	}
	if s.fixedUserID > 0 {
		return s.fixedUserID, true
	}
	return 0, false
}
