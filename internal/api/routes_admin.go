package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/handlers"
)

func registerAdminRoutes(api *gin.RouterGroup, h *handlers.AdminHandler) {
	admin := api.Group("/admin")
	{
		admin.GET("/users", h.ListMembers)
		admin.PUT("/users/:id/role", h.UpdateMemberRole)
		admin.GET("/settings", h.GetOrganization)
		admin.PUT("/settings", h.UpdateOrganization)
	}
}
