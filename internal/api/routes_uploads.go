package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerUploadRoutes(api *gin.RouterGroup, h *handlers.UploadHandler) {
	api.POST("/uploads/direct", h.Direct)
}

func registerObjectRoutes(r *gin.Engine, h *handlers.ObjectHandler) {
	r.GET("/objects/*objectPath", h.Download)
}
