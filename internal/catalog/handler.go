package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogService interface {
	ListExercises(ctx context.Context, params ListParams) ([]Exercise, error)
	ListMuscleGroups(ctx context.Context) ([]MuscleGroup, error)
	ListEquipmentTypes(ctx context.Context) ([]EquipmentType, error)
	GetUserEquipment(ctx context.Context, userID int) ([]EquipmentType, error)
	SetUserEquipment(ctx context.Context, userID int, equipmentIDs []int) ([]EquipmentType, error)
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises")
	defer span.End()

	query := r.URL.Query()
	var params ListParams

	muscleGroupID, err := optionalIntParam(query.Get("muscle_group"))
	if err != nil {
		http.Error(w, "invalid muscle group", http.StatusBadRequest)
		return
	}
	params.MuscleGroupID = muscleGroupID

	equipmentTypeID, err := optionalIntParam(query.Get("equipment"))
	if err != nil {
		http.Error(w, "invalid equipment", http.StatusBadRequest)
		return
	}
	params.EquipmentTypeID = equipmentTypeID

	if query.Get("user_equipment") == "true" {
		userID, ok := auth.UserIDFromContext(ctx)
		if !ok {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		params.UserID = &userID
	}

	exercises, err := handler.service.ListExercises(ctx, params)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.WriteErrorResponse(w, err, "list exercises failed")
		return
	}

	writeJSON(w, emptyIfNil(exercises))
}

func (handler *Handler) HandleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.muscle_groups")
	defer span.End()

	groups, err := handler.service.ListMuscleGroups(ctx)
	if err != nil {
		log.Errorf("list muscle groups: %s", err)
		http.Error(w, "list muscle groups failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, emptyIfNil(groups))
}

func (handler *Handler) HandleEquipmentTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.equipment_types")
	defer span.End()

	types, err := handler.service.ListEquipmentTypes(ctx)
	if err != nil {
		log.Errorf("list equipment types: %s", err)
		http.Error(w, "list equipment types failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, emptyIfNil(types))
}

func (handler *Handler) HandleMyEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.my_equipment")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	equipment, err := handler.service.GetUserEquipment(ctx, userID)
	if err != nil {
		log.Errorf("get equipment of user %d: %s", userID, err)
		http.Error(w, "get equipment failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, emptyIfNil(equipment))
}

type setEquipmentRequest struct {
	EquipmentIDs []int `json:"equipment_ids"`
}

func (handler *Handler) HandleSetMyEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.my_equipment.set")
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

	var req setEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set equipment, unmarshal json params: %s", err)
		http.Error(w, "invalid equipment payload", http.StatusBadRequest)
		return
	}
	if req.EquipmentIDs == nil {
		http.Error(w, "equipment_ids is required", http.StatusBadRequest)
		return
	}

	equipment, err := handler.service.SetUserEquipment(ctx, userID, req.EquipmentIDs)
	if err != nil {
		log.Errorf("set equipment of user %d: %s", userID, err)
		pkg.WriteErrorResponse(w, err, "set equipment failed")
		return
	}

	writeJSON(w, emptyIfNil(equipment))
}

func optionalIntParam(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, valueJson)
}
