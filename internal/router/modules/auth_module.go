package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/container"
	handlers "github.com/annonsera/backend/internal/interface/http"
	"github.com/annonsera/backend/internal/interface/middleware"
)

// AuthModule wires the auth endpoints.
// Public: POST /auth/register, POST /auth/login, POST /auth/logout
// Optional identity: GET /auth/session
// Protected: GET /auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; logout is harmless.
	// Private and loopback callers skip the limit so local tooling can churn.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.GET("/auth/session", middleware.OptionalAuth(m.Auth.JWT, m.Auth), m.Handler.Session)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Auth.JWT, m.Auth, container.GetLogger()))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
