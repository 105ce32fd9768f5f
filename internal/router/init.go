package router

import (
	"github.com/annonsera/backend/internal/application"
	"github.com/annonsera/backend/internal/container"
	pginfra "github.com/annonsera/backend/internal/infrastructure/postgres"
	handlers "github.com/annonsera/backend/internal/interface/http"
	"github.com/annonsera/backend/internal/router/modules"
)

// InitModules builds all feature modules from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	campaignRepo := pginfra.NewCampaignRepository(pool)
	assetRepo := pginfra.NewAssetRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetHasher(), logger)
	campaignSvc := application.NewCampaignService(campaignRepo)
	assetSvc := application.NewAssetService(assetRepo, container.GetStore(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure || cfg.IsProduction())
	campaignHandler := handlers.NewCampaignHandler(campaignSvc, logger)
	assetHandler := handlers.NewAssetHandler(assetSvc, logger)
	adminHandler := handlers.NewAdminHandler(userRepo, logger)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewCampaignModule(campaignHandler, authSvc))
	r.Add(modules.NewAssetModule(assetHandler, authSvc))
	r.Add(modules.NewAdminModule(adminHandler, authSvc).WithAssets(assetHandler))
}
