package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/services"
	"github.com/dealdock/dealdock/pkg/response"
)

// AnalyticsHandler serves the engagement dashboard endpoints.
type AnalyticsHandler struct {
	orgs      *services.OrganizationService
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(orgs *services.OrganizationService, analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{orgs: orgs, analytics: analytics}
}

// Overview handles GET /api/analytics/overview
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	overview, err := h.analytics.Overview(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// RecentActivity handles GET /api/analytics/recent-activity
func (h *AnalyticsHandler) RecentActivity(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	activity, err := h.analytics.RecentActivity(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, activity)
}
