package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"chappbooking/infras/otel"
	"chappbooking/infras/postgres"
	"chappbooking/internal/domains/roomtype/model"
	"chappbooking/shared/constant"
	gDto "chappbooking/shared/dto"
	"chappbooking/shared/logger"
	gRepo "chappbooking/shared/repository"
	"context"
	"fmt"
	"time"
)

// stayQuery returns every stay touching the range. Confined stays are a subset of these.
const stayQuery = `SELECT bookings.start_date, bookings.end_date
	FROM bookings
	WHERE bookings.room_type_id = :room_type_id
		AND bookings.start_date <= CAST(:end_date AS date)
		AND bookings.end_date >= CAST(:start_date AS date)`

type RoomType interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	DailyOccupancy(ctx context.Context, roomTypeID int64, start, end time.Time, mode string) (model.Occupancy, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DailyOccupancy counts bookings of the room type for every day in [start, end] under mode.
func (r *repositoryImpl) DailyOccupancy(ctx context.Context, roomTypeID int64, start, end time.Time, mode string) (model.Occupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_type.DailyOccupancy")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, stayQuery)

	args := map[string]any{
		"start_date":   start.Format(time.DateOnly),
		"end_date":     end.Format(time.DateOnly),
		"room_type_id": roomTypeID,
	}

	prepare, err := r.db.Read.PrepareNamedContext(ctx, stayQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare occupancy query: %w", err)
	}
	defer prepare.Close()

	stays := []model.Stay{}

	if err = prepare.SelectContext(ctx, &stays, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to read stays: %w", err)
	}

	return model.NewOccupancy(start, end, stays, mode), nil
}

// FilterActive matches room types that are not soft-deleted, combined with filters.
func FilterActive(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: append([]any{
			gDto.Filter{
				Field:    model.FieldIsRemoved,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		}, filters...),
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// FilterActiveByID matches the room type with id unless it is soft-deleted.
func FilterActiveByID(id int64) gDto.FilterGroup {
	return FilterActive(gDto.Filter{
		Field:    model.FieldID,
		Value:    id,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})
}
