package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=catalog_test

type catalogRepo interface {
	GetExerciseByID(ctx context.Context, id int) (*Exercise, error)
	ListExercises(ctx context.Context, params ListParams) ([]Exercise, error)
	ListMuscleGroups(ctx context.Context) ([]MuscleGroup, error)
	ListEquipmentTypes(ctx context.Context) ([]EquipmentType, error)
	GetUserEquipment(ctx context.Context, userID int) ([]EquipmentType, error)
	SetUserEquipment(ctx context.Context, userID int, equipmentIDs []int) ([]EquipmentType, error)
	AssignAllEquipment(ctx context.Context, userID int) error
}

// Service serves the exercise catalog. Reference data (exercises, muscle groups,
// equipment types) is cached in process; per-user equipment is always read from the db.
type Service struct {
	repo     catalogRepo
	cache    *freecache.Cache
	cacheTTL int // seconds
}

func NewService(repo catalogRepo, cacheTTL time.Duration) *Service {
	megabyte := 1024 * 1024
	return &Service{
		repo:     repo,
		cache:    freecache.NewCache(5 * megabyte),
		cacheTTL: int(cacheTTL.Seconds()),
	}
}

func (s *Service) GetExerciseByID(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := fmt.Sprintf("exercise::%d", id)
	ex := &Exercise{}
	if s.fromCache(cacheKey, ex) {
		span.SetAttributes(attribute.Bool("from-cache", true))
		return ex, nil
	}

	ex, err = s.repo.GetExerciseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	s.toCache(cacheKey, ex)

	return ex, nil
}

func (s *Service) ListExercises(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// user equipment can change at any time, so those lists are not cached
	if params.UserID != nil {
		exercises, err := s.repo.ListExercises(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list exercises for user equipment: %w", err)
		}
		return exercises, nil
	}

	cacheKey := "exercises::" + optionalKey(params.MuscleGroupID) + "::" + optionalKey(params.EquipmentTypeID)
	var exercises []Exercise
	if s.fromCache(cacheKey, &exercises) {
		span.SetAttributes(attribute.Bool("from-cache", true))
		return exercises, nil
	}

	exercises, err = s.repo.ListExercises(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	s.toCache(cacheKey, exercises)

	return exercises, nil
}

func (s *Service) ListMuscleGroups(ctx context.Context) (_ []MuscleGroup, err error) {
	var groups []MuscleGroup
	if s.fromCache("muscle-groups", &groups) {
		return groups, nil
	}

	groups, err = s.repo.ListMuscleGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list muscle groups: %w", err)
	}
	s.toCache("muscle-groups", groups)

	return groups, nil
}

func (s *Service) ListEquipmentTypes(ctx context.Context) (_ []EquipmentType, err error) {
	var types []EquipmentType
	if s.fromCache("equipment-types", &types) {
		return types, nil
	}

	types, err = s.repo.ListEquipmentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment types: %w", err)
	}
	s.toCache("equipment-types", types)

	return types, nil
}

func (s *Service) GetUserEquipment(ctx context.Context, userID int) ([]EquipmentType, error) {
	equipment, err := s.repo.GetUserEquipment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user equipment: %w", err)
	}
	return equipment, nil
}

func (s *Service) SetUserEquipment(ctx context.Context, userID int, equipmentIDs []int) ([]EquipmentType, error) {
	equipment, err := s.repo.SetUserEquipment(ctx, userID, equipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("set user equipment: %w", err)
	}
	return equipment, nil
}

func (s *Service) AssignAllEquipment(ctx context.Context, userID int) error {
	if err := s.repo.AssignAllEquipment(ctx, userID); err != nil {
		return fmt.Errorf("assign all equipment: %w", err)
	}
	return nil
}

func (s *Service) fromCache(key string, dest any) bool {
	cached, err := s.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		log.Errorf("catalog cache, unmarshal [%s]: %s", key, err)
		return false
	}
	return true
}

func (s *Service) toCache(key string, value any) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("catalog cache, marshal [%s]: %s", key, err)
		return
	}
	if err := s.cache.Set([]byte(key), valueBytes, s.cacheTTL); err != nil {
		log.Errorf("catalog cache, set [%s]: %s", key, err)
	}
}

func optionalKey(id *int) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
