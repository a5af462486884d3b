package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/recipe-app-api/internal/interface/http"
)

type SystemModule struct {
	Health    *handlers.HealthHandler
	DebugVars bool
}

func NewSystemModule(h *handlers.HealthHandler, debugVars bool) *SystemModule {
	return &SystemModule{Health: h, DebugVars: debugVars}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
	if m.DebugVars {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
