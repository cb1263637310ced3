package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/response"
)

type addAssetRequest struct {
	FileID      string `json:"fileId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Section     string `json:"section"`
	Order       int    `json:"order"`
}

// AddAsset handles POST /api/deal-rooms/:id/assets
func (h *DealRoomHandler) AddAsset(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body addAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid asset payload"))
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	asset, err := h.assets.Add(ctx, room.ID, services.AddAssetInput{
		FileID:      body.FileID,
		Title:       body.Title,
		Description: body.Description,
		Section:     body.Section,
		Position:    body.Order,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, asset)
}

type updateAssetRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Section     *string `json:"section"`
	Order       *int    `json:"order"`
}

// UpdateAsset handles PUT /api/deal-rooms/:id/assets/:assetId
func (h *DealRoomHandler) UpdateAsset(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body updateAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid asset payload"))
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	asset, err := h.assets.Update(ctx, room.ID, c.Param("assetId"), services.UpdateAssetInput{
		Title:       body.Title,
		Description: body.Description,
		Section:     body.Section,
		Position:    body.Order,
	})
	if err != nil {
		response.Error(c, assetError(err))
		return
	}

	response.Success(c, http.StatusOK, asset)
}

// RemoveAsset handles DELETE /api/deal-rooms/:id/assets/:assetId
func (h *DealRoomHandler) RemoveAsset(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	if err := h.assets.Remove(ctx, room.ID, c.Param("assetId")); err != nil {
		response.Error(c, assetError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

type reorderAssetsRequest struct {
	AssetIDs []string `json:"assetIds" binding:"required,min=1"`
}

// ReorderAssets handles PUT /api/deal-rooms/:id/assets/reorder
func (h *DealRoomHandler) ReorderAssets(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body reorderAssetsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid reorder payload"))
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	if err := h.assets.Reorder(ctx, room.ID, body.AssetIDs); err != nil {
		response.Error(c, assetError(err))
		return
	}

	assets, err := h.rooms.Assets(ctx, room.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, assets)
}

func assetError(err error) error {
	if errors.Is(err, services.ErrAssetNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
