//go:build wireinject
// +build wireinject

package di

import (
	"chappbooking/config"
	"chappbooking/infras/kafka"
	"chappbooking/infras/otel"
	"chappbooking/infras/postgres"
	"chappbooking/infras/redis"
	"chappbooking/shared/cache"
	"chappbooking/shared/clock"
	"chappbooking/transport/http"
	"chappbooking/transport/http/middleware"
	"chappbooking/transport/http/router"

	bookingRepository "chappbooking/internal/domains/booking/repository"
	bookingService "chappbooking/internal/domains/booking/service"
	roomTypeRepository "chappbooking/internal/domains/roomtype/repository"
	roomTypeService "chappbooking/internal/domains/roomtype/service"
	gRepository "chappbooking/shared/repository"

	bookingHandler "chappbooking/internal/handlers/booking"
	healthHandler "chappbooking/internal/handlers/health"
	roomTypeHandler "chappbooking/internal/handlers/roomtype"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
	gRepository.NewTransactor,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeService.NewInventory,
	roomTypeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.NewValidator,
	bookingService.New,
)

var domains = wire.NewSet(
	roomTypeDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomTypeHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

var serving = wire.NewSet(
	wire.Struct(new(http.Resources), "*"),
	http.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		serving,
	)

	return &http.HTTP{}
}
