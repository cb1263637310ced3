package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerDealRoomRoutes(api *gin.RouterGroup, h *handlers.DealRoomHandler) {
	rooms := api.Group("/deal-rooms")
	{
		rooms.GET("", h.List)
		rooms.POST("", h.Create)
		rooms.GET("/:id", h.Get)
		rooms.PUT("/:id", h.Update)
		rooms.DELETE("/:id", h.Delete)
		rooms.PUT("/:id/publish", h.Publish)

		rooms.POST("/:id/assets", h.AddAsset)
		rooms.PUT("/:id/assets/reorder", h.ReorderAssets)
		rooms.PUT("/:id/assets/:assetId", h.UpdateAsset)
		rooms.DELETE("/:id/assets/:assetId", h.RemoveAsset)

		rooms.GET("/:id/comments", h.ListComments)
		rooms.POST("/:id/comments", h.PostComment)
	}
}
