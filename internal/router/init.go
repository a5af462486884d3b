package router

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/container"
	"github.com/oksasatya/recipe-app-api/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/recipe-app-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-app-api/internal/router/modules"
)

// Deps is everything the HTTP modules need.
type Deps struct {
	Users  *application.UserService
	Auth   *application.AuthService
	Tags   *application.TagService
	Logger *logrus.Logger
	Redis  *redis.Client
	DB     handlers.Pinger

	// Per-minute limits, enforced only with Redis; 0 disables one.
	TokenRateLimit int // POST /user/token per IP
	APIRateLimit   int // every /api request per IP
	TagRateLimit   int // tag writes per user
	DebugVars      bool
}

// DepsFromContainer wires repositories and services from the container singletons.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	userRepo := pginfra.NewUserRepository(pool)
	tokenRepo := pginfra.NewTokenRepository(pool)
	tagRepo := pginfra.NewTagRepository(pool)

	users := application.NewUserService(userRepo, logger).
		WithSearch(container.GetES(), cfg.ESUsersIndex)
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		users.WithMail(pub, cfg.AppName)
	}

	var tokenCache application.TokenCache
	if rdb != nil {
		tokenCache = cache.NewTokenCache(rdb, cfg.TokenCacheTTL)
	}

	return Deps{
		Users:          users,
		Auth:           application.NewAuthService(userRepo, tokenRepo, tokenCache, logger),
		Tags:           application.NewTagService(tagRepo, logger),
		Logger:         logger,
		Redis:          rdb,
		DB:             pool,
		TokenRateLimit: cfg.TokenRateLimit,
		APIRateLimit:   cfg.APIRateLimit,
		TagRateLimit:   cfg.TagRateLimit,
		DebugVars:      cfg.DebugMetricsEnabled,
	}
}

// InitModules builds every feature module and adds it to the registry.
func InitModules(r *Registry, d Deps) {
	r.Use(middleware.RateLimit(d.Redis, d.APIRateLimit, time.Minute, middleware.KeyByIP()))

	userHandler := handlers.NewUserHandler(d.Users, d.Auth, d.Logger)
	tagHandler := handlers.NewTagHandler(d.Tags, d.Logger)
	adminHandler := handlers.NewAdminHandler(d.Users, d.Logger)

	r.Add(modules.NewUserModule(userHandler, d.Auth, d.Redis, d.TokenRateLimit, d.Logger))
	r.Add(modules.NewRecipeModule(tagHandler, d.Auth, d.Redis, d.TagRateLimit, d.Logger))
	r.Add(modules.NewAdminModule(adminHandler, d.Auth, d.Logger))
	r.Add(modules.NewSystemModule(handlers.NewHealthHandler(d.DB), d.DebugVars))
}
