package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/dealdock/dealdock/internal/auth"
	"github.com/dealdock/dealdock/internal/handlers"
	"github.com/dealdock/dealdock/internal/middleware"
	"github.com/dealdock/dealdock/internal/objects"
	"github.com/dealdock/dealdock/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, store objects.Store) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if store == nil {
		return nil, fmt.Errorf("object store must be provided")
	}

	orgSvc, err := services.NewOrganizationService(db)
	if err != nil {
		return nil, err
	}
	memberSvc, err := services.NewMemberService(db)
	if err != nil {
		return nil, err
	}
	fileSvc, err := services.NewFileService(db)
	if err != nil {
		return nil, err
	}
	roomSvc, err := services.NewRoomService(db)
	if err != nil {
		return nil, err
	}
	assetSvc, err := services.NewAssetService(db)
	if err != nil {
		return nil, err
	}
	shareSvc, err := services.NewShareService(db)
	if err != nil {
		return nil, err
	}
	commentSvc, err := services.NewCommentService(db)
	if err != nil {
		return nil, err
	}
	analyticsSvc, err := services.NewAnalyticsService(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	// Health endpoint (public)
	r.GET("/health", handlers.Health())

	// Public share surface and object downloads
	registerShareRoutes(r, handlers.NewShareHandler(shareSvc, roomSvc, commentSvc))
	registerObjectRoutes(r, handlers.NewObjectHandler(store))

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	registerDealRoomRoutes(api, handlers.NewDealRoomHandler(orgSvc, roomSvc, assetSvc, commentSvc))
	registerFileRoutes(api, handlers.NewFileHandler(orgSvc, fileSvc))
	registerAnalyticsRoutes(api, handlers.NewAnalyticsHandler(orgSvc, analyticsSvc))
	registerAdminRoutes(api, handlers.NewAdminHandler(orgSvc, memberSvc))
	registerUploadRoutes(api, handlers.NewUploadHandler(orgSvc, store))

	// Metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
