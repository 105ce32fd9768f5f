package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/container"
	handlers "github.com/annonsera/backend/internal/interface/http"
	"github.com/annonsera/backend/internal/interface/middleware"
)

// AssetModule wires file upload/listing/presign; deletion lives in the admin
// module.
type AssetModule struct {
	Handler *handlers.AssetHandler
	Auth    *application.AuthService
}

func NewAssetModule(h *handlers.AssetHandler, auth *application.AuthService) *AssetModule {
	return &AssetModule{Handler: h, Auth: auth}
}

func (m *AssetModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth.JWT, m.Auth, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/assets", m.Handler.Upload)
		auth.GET("/assets", m.Handler.List)
		auth.GET("/assets/objects", m.Handler.ListObjects)
		auth.GET("/assets/:id/url", m.Handler.DownloadURL)
	}
}
