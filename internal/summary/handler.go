package summary

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=summary_test

type summaryService interface {
	GetDailySummary(ctx context.Context, userID int, date string) (*Summary, error)
	GetWeeklySummary(ctx context.Context, userID int, endDate string) ([]Summary, error)
}

type todayResolver interface {
	Today(r *http.Request) string
}

type Handler struct {
	service summaryService
	today   todayResolver
}

func NewHandler(service summaryService, today todayResolver) *Handler {
	return &Handler{
		service: service,
		today:   today,
	}
}

func (h *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.summary.daily")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.GetDailySummary(ctx, userID, h.date(r))
	if err != nil {
		log.Errorf("daily summary, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "get summary failed")
		return
	}

	h.writeJSON(w, summary)
}

func (h *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.summary.weekly")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	summaries, err := h.service.GetWeeklySummary(ctx, userID, h.date(r))
	if err != nil {
		log.Errorf("weekly summary, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "get weekly summary failed")
		return
	}

	h.writeJSON(w, summaries)
}

func (h *Handler) date(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return h.today.Today(r)
}

func (h *Handler) writeJSON(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("marshal summary: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, valueJson)
}
