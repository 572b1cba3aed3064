package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"chappbooking/config"
	"chappbooking/infras/kafka"
	"chappbooking/infras/otel"
	"chappbooking/internal/domains/booking/model"
	"chappbooking/internal/domains/booking/model/dto"
	"chappbooking/internal/domains/booking/repository"
	rtRepo "chappbooking/internal/domains/roomtype/repository"
	"chappbooking/shared"
	"chappbooking/shared/cache"
	"chappbooking/shared/clock"
	"chappbooking/shared/constant"
	"chappbooking/shared/failure"
	gRepo "chappbooking/shared/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking      = "booking:get"
	cacheUpcomingBooking = "booking:upcoming"
	// Bumped on every create. Upcoming lists are keyed by it, so a list read before a create can never be served after it.
	cacheUpcomingGeneration = "booking:generation:upcoming"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetUpcoming(ctx context.Context) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomTypeRepo rtRepo.RoomType
	validator    Validator
	transactor   gRepo.Transactor
	kafka        kafka.Client
	clock        clock.Clock
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomTypeRepo rtRepo.RoomType,
	validator Validator,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	clk clock.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		validator:    validator,
		transactor:   transactor,
		kafka:        kafka,
		clock:        clk,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel(s.clock.Now())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.Get(ctx, rtRepo.FilterActiveByID(booking.RoomTypeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return res, failure.Validation("room_type", fmt.Sprintf("invalid pk \"%d\" - object does not exist", booking.RoomTypeID)) // nolint:wrapcheck
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.Lock(ctx, tx, roomType.ID); err != nil {
			return err // nolint:wrapcheck
		}

		if err := s.validator.Validate(ctx, roomType, booking); err != nil {
			return err // nolint:wrapcheck
		}

		reference, err := model.NewReference()
		if err != nil {
			return err // nolint:wrapcheck
		}

		booking.Amount = booking.CalculateAmount(roomType.Amount)
		booking.BookingReference = reference
		booking.RoomNumber = nil

		booking.ID, err = s.repo.InsertTx(ctx, tx, booking)

		return err // nolint:wrapcheck
	})
	if err != nil {
		if _, ok := failure.GetFields(err); ok {
			log.Warn().Err(err).Int64("roomTypeID", roomType.ID).Msg("booking rejected")

			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)
	s.bumpUpcoming(context.WithoutCancel(ctx))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheUpcomingBooking)
		s.publishCreated(c, res)
	}()

	return res, nil
}

func (s *serviceImpl) bumpUpcoming(ctx context.Context) {
	if _, err := s.cache.Increment(ctx, cacheUpcomingGeneration, 0); err != nil {
		log.Error().Err(err).Msg("failed to bump upcoming bookings generation")
		shared.InvalidateCaches(ctx, s.cache, cacheUpcomingBooking)
	}
}

// upcomingGeneration returns the current generation, "0" before the first create.
func (s *serviceImpl) upcomingGeneration(ctx context.Context) (string, bool) {
	var generation string

	err := s.cache.Get(ctx, cacheUpcomingGeneration, &generation)
	if err == nil {
		return generation, true
	}

	if errors.Is(err, cache.Nil) {
		return "0", true
	}

	log.Error().Err(err).Msg("failed to read upcoming bookings generation")

	return "", false
}

// GetUpcoming lists bookings ending today or later. The cache key carries the day so entries roll over at midnight,
// and the create generation so entries never outlive a create.
func (s *serviceImpl) GetUpcoming(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUpcoming")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := s.clock.Today().Format(time.DateOnly)

	generation, cached := s.upcomingGeneration(ctx)
	cacheKey := shared.BuildCacheKey(cacheUpcomingBooking, today, generation)

	if cached {
		if s.cache.Get(ctx, cacheKey, &res) == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for upcoming bookings")

			return res, nil
		}
	}

	models, err := s.repo.GetAll(ctx, repository.UpcomingOrder(), repository.FilterUpcoming(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming bookings")

		return nil, fmt.Errorf("failed to get upcoming bookings: %w", err)
	}

	res = dto.FromModels(models)

	if !cached {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save upcoming bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update accepts the request and returns the stored booking as is.
func (s *serviceImpl) Update(ctx context.Context, _ dto.UpdateBookingRequest, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}
