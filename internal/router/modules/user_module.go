package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /api/user/create, POST /api/user/token
// Protected: DELETE /api/user/token, GET /api/user/me, PATCH /api/user/me
type UserModule struct {
	Handler        *handlers.UserHandler
	Auth           middleware.Authenticator
	Redis          *redis.Client
	TokenRateLimit int
	Logger         *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator, rdb *redis.Client, tokenRateLimit int, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Redis: rdb, TokenRateLimit: tokenRateLimit, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")

	tokenLimiter := middleware.RateLimit(m.Redis, m.TokenRateLimit, time.Minute, middleware.KeyByIPAndPath())
	user.POST("/create", m.Handler.Create)
	user.POST("/token", tokenLimiter, m.Handler.Token)

	auth := user.Group("")
	auth.Use(middleware.Auth(m.Auth, m.Logger))
	{
		auth.DELETE("/token", m.Handler.RevokeToken)
		auth.GET("/me", m.Handler.Me)
		auth.PATCH("/me", m.Handler.UpdateMe)
	}
}
