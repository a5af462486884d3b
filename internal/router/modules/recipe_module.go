package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
)

// RecipeModule wires the per-user tag routes under /api/recipe.
type RecipeModule struct {
	Tags         *handlers.TagHandler
	Auth         middleware.Authenticator
	Redis        *redis.Client
	TagRateLimit int
	Logger       *logrus.Logger
}

func NewRecipeModule(tags *handlers.TagHandler, auth middleware.Authenticator, rdb *redis.Client, tagRateLimit int, logger *logrus.Logger) *RecipeModule {
	return &RecipeModule{Tags: tags, Auth: auth, Redis: rdb, TagRateLimit: tagRateLimit, Logger: logger}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	recipe := rg.Group("/recipe")
	recipe.Use(middleware.Auth(m.Auth, m.Logger))

	// keyed by the authenticated user, so it must follow Auth
	writeLimiter := middleware.RateLimit(m.Redis, m.TagRateLimit, time.Minute, middleware.KeyByUserID())
	{
		recipe.GET("/tags", m.Tags.List)
		recipe.POST("/tags", writeLimiter, m.Tags.Create)
		recipe.DELETE("/tags/:id", writeLimiter, m.Tags.Delete)
	}
}
