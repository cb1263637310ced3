package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerAnalyticsRoutes(api *gin.RouterGroup, h *handlers.AnalyticsHandler) {
	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", h.Overview)
		analytics.GET("/recent-activity", h.RecentActivity)
	}
}
