package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/container"
	handlers "github.com/annonsera/backend/internal/interface/http"
	"github.com/annonsera/backend/internal/interface/middleware"
)

// AdminModule wires admin-only routes. AdminOnly must follow RequireAuth in
// the same chain; this module is the only place AdminOnly is mounted, which
// keeps that ordering in one spot.
type AdminModule struct {
	Admin  *handlers.AdminHandler
	Assets *handlers.AssetHandler
	Auth   *application.AuthService
}

func NewAdminModule(admin *handlers.AdminHandler, auth *application.AuthService) *AdminModule {
	return &AdminModule{Admin: admin, Auth: auth}
}

// WithAssets lets the admin module expose asset deletion.
func (m *AdminModule) WithAssets(h *handlers.AssetHandler) *AdminModule {
	m.Assets = h
	return m
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/")
	admin.Use(middleware.RequireAuth(m.Auth.JWT, m.Auth, container.GetLogger()))
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/admin/users", m.Admin.ListUsers)
		if m.Assets != nil {
			admin.DELETE("/assets/:id", m.Assets.Delete)
		}
	}
}
