//go:build wireinject
// +build wireinject

package di

import (
	"roost/config"
	"roost/infras/jwt"
	"roost/infras/kafka"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/infras/redis"
	"roost/shared/cache"
	"roost/shared/clock"
	"roost/transport/http"
	"roost/transport/http/middleware"
	"roost/transport/http/router"

	bookingHandler "roost/internal/handlers/booking"
	experienceHandler "roost/internal/handlers/experience"
	roomHandler "roost/internal/handlers/room"
	tagHandler "roost/internal/handlers/tag"

	bookingRepository "roost/internal/domains/booking/repository"
	bookingService "roost/internal/domains/booking/service"
	experienceRepository "roost/internal/domains/experience/repository"
	experienceService "roost/internal/domains/experience/service"
	roomRepository "roost/internal/domains/room/repository"
	roomService "roost/internal/domains/room/service"
	tagRepository "roost/internal/domains/tag/repository"
	tagService "roost/internal/domains/tag/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	clock.App,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var tagDomain = wire.NewSet(
	tagRepository.New,
	tagService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var experienceDomain = wire.NewSet(
	experienceRepository.New,
	experienceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	tagDomain,
	roomDomain,
	experienceDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tagHandler.New,
	roomHandler.New,
	experienceHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
