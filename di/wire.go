//go:build wireinject
// +build wireinject

package di

import (
	"donmario/config"
	"donmario/infras/jwt"
	"donmario/infras/kafka"
	"donmario/infras/otel"
	"donmario/infras/postgres"
	"donmario/infras/redis"
	"donmario/internal/realtime"
	"donmario/shared/cache"
	"donmario/transport/http"
	"donmario/transport/http/middleware"
	"donmario/transport/http/router"

	reservationRepository "donmario/internal/domains/reservation/repository"
	reservationService "donmario/internal/domains/reservation/service"
	tableRepository "donmario/internal/domains/table/repository"
	tableService "donmario/internal/domains/table/service"

	"github.com/google/wire"

	authService "donmario/internal/domains/auth/service"
	authHandler "donmario/internal/handlers/auth"
	chatHandler "donmario/internal/handlers/chat"
	reservationHandler "donmario/internal/handlers/reservation"
	tableHandler "donmario/internal/handlers/table"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	provideRand,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var realtimeDomain = wire.NewSet(
	realtime.NewHub,
	realtime.NewBridge,
)

var domains = wire.NewSet(
	tableDomain,
	reservationDomain,
	authDomain,
	realtimeDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tableHandler.New,
	reservationHandler.New,
	authHandler.New,
	chatHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
