package meals

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=meals_test

type mealsRepo interface {
	Create(ctx context.Context, meal Meal) (*Meal, error)
	ListByDate(ctx context.Context, userID int, date string) ([]Meal, error)
	Recent(ctx context.Context, userID int) ([]Meal, error)
	Delete(ctx context.Context, id, userID int) error
	CreateFavorite(ctx context.Context, favorite Favorite) (*Favorite, error)
	ListFavorites(ctx context.Context, userID int) ([]Favorite, error)
	DeleteFavorite(ctx context.Context, id, userID int) error
}

type todayResolver interface {
	Today(r *http.Request) string
}

type Handler struct {
	repo  mealsRepo
	today todayResolver
}

func NewHandler(repo mealsRepo, today todayResolver) *Handler {
	return &Handler{
		repo:  repo,
		today: today,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.create")
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

	meal := Meal{Servings: 1}
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		log.Tracef("new meal, unmarshal json params: %s", err)
		http.Error(w, "invalid meal payload", http.StatusBadRequest)
		return
	}
	meal.UserID = userID
	if meal.Date == "" {
		meal.Date = h.today.Today(r)
	}
	if err := meal.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(ctx, meal)
	if err != nil {
		log.Errorf("new meal, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "add meal failed")
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.list")
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

	meals, err := h.repo.ListByDate(ctx, userID, date)
	if err != nil {
		log.Errorf("list meals, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "list meals failed")
		return
	}

	writeJSON(w, emptyIfNil(meals), http.StatusOK)
}

func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.recent")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	meals, err := h.repo.Recent(ctx, userID)
	if err != nil {
		log.Errorf("recent meals, user %d: %s", userID, err)
		http.Error(w, "recent meals failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, emptyIfNil(meals), http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid meal id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id, userID); err != nil {
		log.Errorf("delete meal %d, user %d: %s", id, userID, err)
		pkg.WriteErrorResponse(w, err, "delete meal failed")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (h *Handler) HandleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.create")
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

	favorite := Favorite{DefaultServings: 1}
	if err := json.NewDecoder(r.Body).Decode(&favorite); err != nil {
		log.Tracef("new favorite, unmarshal json params: %s", err)
		http.Error(w, "invalid favorite payload", http.StatusBadRequest)
		return
	}
	favorite.UserID = userID
	if err := favorite.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.repo.CreateFavorite(ctx, favorite)
	if err != nil {
		log.Errorf("new favorite, user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "add favorite failed")
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	favorites, err := h.repo.ListFavorites(ctx, userID)
	if err != nil {
		log.Errorf("list favorites, user %d: %s", userID, err)
		http.Error(w, "list favorites failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, emptyIfNil(favorites), http.StatusOK)
}

func (h *Handler) HandleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid favorite id", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteFavorite(ctx, id, userID); err != nil {
		log.Errorf("delete favorite %d, user %d: %s", id, userID, err)
		pkg.WriteErrorResponse(w, err, "delete favorite failed")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
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
