package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/response"
	"github.com/dealdock/dealdock/pkg/validator"
)

// AdminHandler serves workspace membership and organization settings.
type AdminHandler struct {
	orgs    *services.OrganizationService
	members *services.MemberService
}

func NewAdminHandler(orgs *services.OrganizationService, members *services.MemberService) *AdminHandler {
	return &AdminHandler{orgs: orgs, members: members}
}

// ListMembers handles GET /api/admin/users
func (h *AdminHandler) ListMembers(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	members, err := h.members.List(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, members)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateMemberRole handles PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateMemberRole(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body updateRoleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid role payload"))
		return
	}

	member, err := h.members.UpdateRole(requestContext(c), orgID, c.Param("id"), body.Role)
	if err != nil {
		response.Error(c, memberError(err))
		return
	}

	response.Success(c, http.StatusOK, member)
}

// GetOrganization handles GET /api/admin/settings
func (h *AdminHandler) GetOrganization(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	org, err := h.orgs.Get(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, org)
}

type updateOrganizationRequest struct {
	Name       *string        `json:"name" validate:"omitempty,min=1,max=120"`
	LogoURL    *string        `json:"logoUrl" validate:"omitempty,max=2048"`
	BrandColor *string        `json:"brandColor" validate:"omitempty,hexcolor"`
	Settings   datatypes.JSON `json:"settings"`
}

// UpdateOrganization handles PUT /api/admin/settings
func (h *AdminHandler) UpdateOrganization(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body updateOrganizationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid settings payload"))
		return
	}
	if err := validator.ValidateStruct(body); err != nil {
		response.Error(c, apperrors.NewBadRequest(err.Error()))
		return
	}

	org, err := h.orgs.Update(requestContext(c), orgID, services.UpdateOrganizationInput{
		Name:       body.Name,
		LogoURL:    body.LogoURL,
		BrandColor: body.BrandColor,
		Settings:   body.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, org)
}

func memberError(err error) error {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, services.ErrOwnerRoleImmutable), errors.Is(err, services.ErrInvalidRole):
		return apperrors.NewBadRequest(err.Error())
	}
	return err
}
