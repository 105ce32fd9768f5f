package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/container"
	handlers "github.com/annonsera/backend/internal/interface/http"
	"github.com/annonsera/backend/internal/interface/middleware"
)

// CampaignModule wires campaign CRUD; every route requires auth.
type CampaignModule struct {
	Handler *handlers.CampaignHandler
	Auth    *application.AuthService
}

func NewCampaignModule(h *handlers.CampaignHandler, auth *application.AuthService) *CampaignModule {
	return &CampaignModule{Handler: h, Auth: auth}
}

func (m *CampaignModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth.JWT, m.Auth, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/campaigns", m.Handler.Create)
		auth.GET("/campaigns", m.Handler.List)
		auth.GET("/campaigns/:id", m.Handler.Get)
	}
}
