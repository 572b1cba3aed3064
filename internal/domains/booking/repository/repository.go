package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"chappbooking/infras/otel"
	"chappbooking/infras/postgres"
	"chappbooking/internal/domains/booking/model"
	"chappbooking/shared/constant"
	gDto "chappbooking/shared/dto"
	"chappbooking/shared/logger"
	gRepo "chappbooking/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const lockQuery = "SELECT pg_advisory_xact_lock($1)"

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Lock(ctx context.Context, sqltx *sqlx.Tx, roomTypeID int64) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Lock serializes booking creation for a room type until sqltx ends.
func (r *repositoryImpl) Lock(ctx context.Context, sqltx *sqlx.Tx, roomTypeID int64) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Lock")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	if _, err := sqltx.ExecContext(ctx, lockQuery, roomTypeID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock room type %d: %w", roomTypeID, err)
	}

	return nil
}

// FilterUpcoming matches bookings ending on or after today.
func FilterUpcoming(today string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "today",
				Field:    model.FieldEndDate,
				Value:    today,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// UpcomingOrder sorts by end date, id breaking ties.
func UpcomingOrder() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldEndDate,
		SortDir: gDto.SortDirAsc,
	}
}
