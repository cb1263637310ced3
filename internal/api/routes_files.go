package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerFileRoutes(api *gin.RouterGroup, h *handlers.FileHandler) {
	files := api.Group("/files")
	{
		files.GET("", h.List)
		files.POST("", h.Create)
		files.DELETE("/:id", h.Delete)
	}
}
