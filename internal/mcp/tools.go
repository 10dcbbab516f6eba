package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fittrack/pkg"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func todayUTC() string {
	return pkg.Today(time.Now(), time.UTC)
}

// fittrack_daily_summary
func (s *Server) dailySummaryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fittrack_daily_summary",
		mcp.WithDescription("Returns the calorie balance of a day: calories eaten, burned by workouts and sessions, BMR, net calories, macros and calories left to the goal weight."),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD form, defaults to today (UTC)")),
	)
	return tool, s.handleDailySummary
}

func (s *Server) handleDailySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := s.userID(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	date := request.GetString("date", s.NowFunc())
	daily, err := s.summary.GetDailySummary(ctx, userID, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get daily summary: %v", err)), nil
	}
	return jsonResult(daily)
}

// fittrack_sessions_by_date
func (s *Server) sessionsByDateTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fittrack_sessions_by_date",
		mcp.WithDescription("Lists the finished (completed or auto stopped) workout sessions of a day with their calorie totals."),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD form, defaults to today (UTC)")),
	)
	return tool, s.handleSessionsByDate
}

func (s *Server) handleSessionsByDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := s.userID(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	date := request.GetString("date", s.NowFunc())
	list, err := s.sessions.GetSessionsByDate(ctx, userID, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}
	if list == nil {
		return mcp.NewToolResultText("[]"), nil
	}
	return jsonResult(list)
}

// fittrack_active_session
func (s *Server) activeSessionTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fittrack_active_session",
		mcp.WithDescription("Returns the workout session currently in progress, or null when there is none."),
	)
	return tool, s.handleActiveSession
}

func (s *Server) handleActiveSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := s.userID(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	session, err := s.sessions.GetActiveSession(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get active session: %v", err)), nil
	}
	return jsonResult(session)
}

// fittrack_session_logs
func (s *Server) sessionLogsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("fittrack_session_logs",
		mcp.WithDescription("Lists the exercise sets logged in a workout session, oldest first, with exercise, muscle group and equipment names."),
		mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Workout session id")),
	)
	return tool, s.handleSessionLogs
}

func (s *Server) handleSessionLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := s.userID(ctx)
	if !ok {
		return mcp.NewToolResultError("not authenticated"), nil
	}

	sessionID, err := request.RequireInt("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: session_id"), nil
	}

	// only the owner may read the logs
	if _, err := s.sessions.GetSession(ctx, userID, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %d: %v", sessionID, err)), nil
	}

	logs, err := s.sessions.ListLogs(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list logs: %v", err)), nil
	}
	if logs == nil {
		return mcp.NewToolResultText("[]"), nil
	}
	return jsonResult(logs)
}

func jsonResult(value any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
