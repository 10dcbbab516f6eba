package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsService interface {
	StartSession(ctx context.Context, userID int, date string) (*Session, error)
	GetActiveSession(ctx context.Context, userID int) (*Session, error)
	GetSession(ctx context.Context, userID, sessionID int) (*Session, error)
	GetSessionsByDate(ctx context.Context, userID int, date string) ([]Session, error)
	StopSession(ctx context.Context, userID, sessionID int) (*Session, error)
	LogExerciseSet(ctx context.Context, params LogSetParams) (*ExerciseLog, error)
	ListLogs(ctx context.Context, sessionID int) ([]ExerciseLog, error)
	DeleteLog(ctx context.Context, logID, userID int) (bool, error)
}

// todayResolver gives the caller's current calendar day, YYYY-MM-DD.
type todayResolver interface {
	Today(r *http.Request) string
}

type Handler struct {
	service sessionsService
	today   todayResolver
}

func NewHandler(service sessionsService, today todayResolver) *Handler {
	return &Handler{
		service: service,
		today:   today,
	}
}

type startSessionRequest struct {
	Date string `json:"date"`
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// the body is optional
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Tracef("start session, unmarshal json params: %s", err)
		http.Error(w, "invalid start session payload", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		req.Date = h.today.Today(r)
	}

	session, err := h.service.StartSession(ctx, userID, req.Date)
	if err != nil {
		log.Errorf("start session, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "start session failed")
		return
	}

	writeJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.active")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	session, err := h.service.GetActiveSession(ctx, userID)
	if err != nil {
		log.Errorf("get active session, user %d: %s", userID, err)
		http.Error(w, "get active session failed", http.StatusInternalServerError)
		return
	}

	// null when there is no active session
	writeJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.bydate")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today.Today(r)
	}

	sessions, err := h.service.GetSessionsByDate(ctx, userID, date)
	if err != nil {
		log.Errorf("get sessions by date %s, user %d: %s", date, userID, err)
		pkg.WriteErrorResponse(w, err, "get sessions failed")
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}

	writeJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleStop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.stop")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || sessionID < 1 {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	session, err := h.service.StopSession(ctx, userID, sessionID)
	if err != nil {
		log.Errorf("stop session %d, user %d: %s", sessionID, userID, err)
		pkg.WriteErrorResponse(w, err, "stop session failed")
		return
	}

	writeJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.logset")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params LogSetParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Tracef("log set, unmarshal json params: %s", err)
		http.Error(w, "invalid log set payload", http.StatusBadRequest)
		return
	}
	params.UserID = userID

	exLog, err := h.service.LogExerciseSet(ctx, params)
	if err != nil {
		log.Errorf("log set, session %d, user %d: %s", params.SessionID, userID, err)
		pkg.WriteErrorResponse(w, err, "log set failed")
		return
	}

	writeJSON(w, exLog, http.StatusCreated)
}

func (h *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.logs")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || sessionID < 1 {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	// only the owner gets to see the logs
	if _, err := h.service.GetSession(ctx, userID, sessionID); err != nil {
		log.Errorf("list logs, get session %d, user %d: %s", sessionID, userID, err)
		pkg.WriteErrorResponse(w, err, "list logs failed")
		return
	}

	logs, err := h.service.ListLogs(ctx, sessionID)
	if err != nil {
		log.Errorf("list logs, session %d: %s", sessionID, err)
		http.Error(w, "list logs failed", http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []ExerciseLog{}
	}

	writeJSON(w, logs, http.StatusOK)
}

func (h *Handler) HandleDeleteLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.logs.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	logID, err := strconv.Atoi(mux.Vars(r)["logId"])
	if err != nil || logID < 1 {
		http.Error(w, "invalid log id", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteLog(ctx, logID, userID)
	if err != nil {
		log.Errorf("delete log %d, user %d: %s", logID, userID, err)
		http.Error(w, "delete log failed", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "log not found", http.StatusNotFound)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func writeJSON(w http.ResponseWriter, value any, statusCode int) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, valueJson, statusCode)
}
