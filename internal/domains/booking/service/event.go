package service

import (
	"chappbooking/infras/kafka"
	"chappbooking/internal/domains/booking/model/dto"
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const eventBookingCreated = "booking.created"

type bookingEvent struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	OccurredAt time.Time           `json:"occurred_at"`
	Booking    dto.BookingResponse `json:"booking"`
}

// publishCreated keys the event by room type so a partition sees one room type's bookings in order.
func (s *serviceImpl) publishCreated(ctx context.Context, booking dto.BookingResponse) {
	if !s.cfg.Kafka.Enable {
		return
	}

	msg := kafka.Message{
		Key: strconv.FormatInt(booking.RoomType, 10),
		Value: bookingEvent{
			ID:         uuid.NewString(),
			Type:       eventBookingCreated,
			OccurredAt: s.clock.Now(),
			Booking:    booking,
		},
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, msg); err != nil {
		log.Error().Err(err).Int64("bookingID", booking.ID).Msg("failed to publish booking created event")
	}
}
