package service

//go:generate go run go.uber.org/mock/mockgen -source=./validator.go -destination=../mocks/validator_mock.go -package=mocks

import (
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/booking/model"
	rtModel "chappbooking/internal/domains/roomtype/model"
	rtService "chappbooking/internal/domains/roomtype/service"
	"chappbooking/shared/clock"
	"chappbooking/shared/constant"
	"chappbooking/shared/failure"
	"context"
	"fmt"
)

const (
	MessageStartBeforeToday = "start date can't be before today"
	MessageEndBeforeStart   = "finish must occur after start"
	MessageEndNotThisYear   = "finish must occur in current year"
	MessageTooManyGuests    = "guests can't be more than max room guest"
	MessageNoEmptyRooms     = "not enough empty rooms"
)

// Validator applies the booking rules in order and stops at the first broken one.
type Validator interface {
	Validate(ctx context.Context, roomType rtModel.RoomType, booking model.Booking) error
}

type validatorImpl struct {
	inventory rtService.Inventory
	clock     clock.Clock
	otel      otel.Otel
}

func NewValidator(inventory rtService.Inventory, clk clock.Clock, otel otel.Otel) Validator {
	return &validatorImpl{
		inventory: inventory,
		clock:     clk,
		otel:      otel,
	}
}

func (v *validatorImpl) Validate(ctx context.Context, roomType rtModel.RoomType, booking model.Booking) error {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()

	today := v.clock.Today()
	start := clock.DateOf(booking.StartDate)
	end := clock.DateOf(booking.EndDate)

	switch {
	case start.Before(today):
		return failure.Validation(model.FieldStartDate, MessageStartBeforeToday) // nolint:wrapcheck
	case start.After(end):
		return failure.Validation(model.FieldEndDate, MessageEndBeforeStart) // nolint:wrapcheck
	case end.Year() != today.Year():
		return failure.Validation(model.FieldEndDate, MessageEndNotThisYear) // nolint:wrapcheck
	case booking.NumGuest > roomType.MaxGuest:
		return failure.Validation(model.FieldNumGuest, MessageTooManyGuests) // nolint:wrapcheck
	}

	empty, err := v.inventory.EmptyRooms(ctx, roomType, &start, &end)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to check empty rooms: %w", err)
	}

	if empty <= 0 {
		return failure.Validation(model.FieldNumGuest, MessageNoEmptyRooms) // nolint:wrapcheck
	}

	return nil
}
