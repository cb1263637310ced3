package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerShareRoutes(r *gin.Engine, h *handlers.ShareHandler) {
	share := r.Group("/api/share/:token")
	{
		share.GET("", h.Resolve)
		share.POST("/verify", h.VerifyPassword)
		share.POST("/track", h.TrackView)
		share.POST("/click", h.RecordClick)
		share.POST("/duration", h.RecordDuration)
		share.GET("/comments", h.ListComments)
		share.POST("/comments", h.PostComment)
	}
}
