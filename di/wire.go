//go:build wireinject
// +build wireinject

package di

import (
	"estate/config"
	"estate/infras/jwt"
	"estate/infras/kafka"
	"estate/infras/otel"
	"estate/infras/postgres"
	"estate/infras/redis"
	"estate/infras/s3"
	"estate/permissions"
	"estate/shared/cache"
	"estate/transport/http"
	"estate/transport/http/middleware"
	"estate/transport/http/router"

	"github.com/google/wire"

	authService "estate/internal/domains/auth/service"
	userRepository "estate/internal/domains/user/repository"
	authHandler "estate/internal/handlers/auth"

	propertyRepository "estate/internal/domains/property/repository"
	propertyService "estate/internal/domains/property/service"
	propertyHandler "estate/internal/handlers/property"

	bookingRepository "estate/internal/domains/booking/repository"
	bookingService "estate/internal/domains/booking/service"
	"estate/internal/domains/invoice"
	bookingHandler "estate/internal/handlers/booking"

	adminService "estate/internal/domains/admin/service"
	adminHandler "estate/internal/handlers/admin"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyRepository.NewFavorite,
	propertyService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	invoice.New,
	bookingService.New,
)

var adminDomain = wire.NewSet(
	adminService.New,
)

var domains = wire.NewSet(
	authDomain,
	propertyDomain,
	bookingDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	propertyHandler.New,
	bookingHandler.New,
	adminHandler.New,
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
