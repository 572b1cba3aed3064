package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=RoomType=MockRoomTypeService
//go:generate go run go.uber.org/mock/mockgen -source=./inventory.go -destination=../mocks/inventory_mock.go -package=mocks

import (
	"chappbooking/config"
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/roomtype/model"
	"chappbooking/internal/domains/roomtype/model/dto"
	"chappbooking/internal/domains/roomtype/repository"
	"chappbooking/shared"
	"chappbooking/shared/cache"
	"chappbooking/shared/constant"
	gDto "chappbooking/shared/dto"
	"chappbooking/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoomType = "roomtype:get"
)

type RoomType interface {
	GetAll(ctx context.Context, req dto.GetRoomTypesRequest) ([]dto.RoomTypeResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomTypeResponse, error)
}

type serviceImpl struct {
	repo      repository.RoomType
	inventory Inventory
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.RoomType, inventory Inventory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomType {
	return &serviceImpl{
		repo:      repo,
		inventory: inventory,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// GetAll lists room types by id. Availability is not cached since every booking changes it.
func (s *serviceImpl) GetAll(ctx context.Context, req dto.GetRoomTypesRequest) (res []dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filters := []any{}
	if req.NumGuest != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  constant.RequestParamNumGuest,
			Field:    model.FieldMaxGuest,
			Value:    *req.NumGuest,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, repository.FilterActive(filters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return nil, fmt.Errorf("failed to get room types: %w", err)
	}

	start, end := req.Range()
	res = make([]dto.RoomTypeResponse, len(models))

	for i, roomType := range models {
		empty, err := s.inventory.EmptyRooms(ctx, roomType, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to compute empty rooms: %w", err)
		}

		res[i].FromModel(roomType, empty)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoomType, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room type")

		return res, nil
	}

	roomType, err := s.repo.Get(ctx, repository.FilterActiveByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(roomType, 0)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return res, nil
}
