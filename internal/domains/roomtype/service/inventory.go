package service

import (
	"chappbooking/config"
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/roomtype/model"
	"chappbooking/internal/domains/roomtype/repository"
	"chappbooking/shared/clock"
	"chappbooking/shared/constant"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Inventory answers how many rooms of a type are free across a date range.
type Inventory interface {
	EmptyRooms(ctx context.Context, roomType model.RoomType, start, end *time.Time) (int, error)
}

type inventoryImpl struct {
	repo repository.RoomType
	mode string
	otel otel.Otel
}

func NewInventory(repo repository.RoomType, cfg *config.Config, otel otel.Otel) Inventory {
	mode, ok := model.ParseAvailabilityMode(cfg.App.Availability.Mode)
	if !ok {
		log.Warn().Str("mode", cfg.App.Availability.Mode).Msg("unknown availability mode, falling back to confined")
	}

	return &inventoryImpl{
		repo: repo,
		mode: mode,
		otel: otel,
	}
}

func (s *inventoryImpl) EmptyRooms(ctx context.Context, roomType model.RoomType, start, end *time.Time) (empty int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EmptyRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if start == nil || end == nil || clock.DateOf(*end).Before(clock.DateOf(*start)) {
		return 0, nil
	}

	occupancy, err := s.repo.DailyOccupancy(ctx, roomType.ID, *start, *end, s.mode)
	if err != nil {
		log.Error().Err(err).Int64("roomTypeID", roomType.ID).Msg("failed to get room type occupancy")

		return 0, fmt.Errorf("failed to get room type occupancy: %w", err)
	}

	return roomType.EmptyRooms(start, end, occupancy), nil
}
