package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
	"github.com/oksasatya/recipe-app-api/internal/interface/middleware"
)

// AdminModule exposes staff-only user management.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    middleware.Authenticator
	Logger  *logrus.Logger
}

func NewAdminModule(h *handlers.AdminHandler, auth middleware.Authenticator, logger *logrus.Logger) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth, Logger: logger}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Auth, m.Logger), middleware.RequireStaff())
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.Search)
		admin.GET("/users/:id", m.Handler.GetUser)
	}
}
