package workouts

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Create(ctx context.Context, workout Workout) (*Workout, error)
	ListByDate(ctx context.Context, userID int, date string) ([]Workout, error)
	Delete(ctx context.Context, id, userID int) error
}

type todayResolver interface {
	Today(r *http.Request) string
}

type Handler struct {
	repo  workoutsRepo
	today todayResolver
}

func NewHandler(repo workoutsRepo, today todayResolver) *Handler {
	return &Handler{
		repo:  repo,
		today: today,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
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

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout payload", http.StatusBadRequest)
		return
	}
	workout.UserID = userID
	if workout.Date == "" {
		workout.Date = h.today.Today(r)
	}
	if err := workout.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(ctx, workout)
	if err != nil {
		log.Errorf("new workout, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "add workout failed")
		return
	}

	createdJson, err := json.Marshal(created)
	if err != nil {
		log.Errorf("marshal workout: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdJson, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
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

	workouts, err := h.repo.ListByDate(ctx, userID, date)
	if err != nil {
		log.Errorf("list workouts, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "list workouts failed")
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("marshal workouts: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, workoutsJson)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id, userID); err != nil {
		log.Errorf("delete workout %d, user %d: %s", id, userID, err)
		pkg.WriteErrorResponse(w, err, "delete workout failed")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}
