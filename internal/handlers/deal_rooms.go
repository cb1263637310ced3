package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/response"
	"github.com/dealdock/dealdock/pkg/validator"
)

// DealRoomHandler serves the seller-facing room CRUD surface.
type DealRoomHandler struct {
	orgs     *services.OrganizationService
	rooms    *services.RoomService
	assets   *services.AssetService
	comments *services.CommentService
}

func NewDealRoomHandler(
	orgs *services.OrganizationService,
	rooms *services.RoomService,
	assets *services.AssetService,
	comments *services.CommentService,
) *DealRoomHandler {
	return &DealRoomHandler{orgs: orgs, rooms: rooms, assets: assets, comments: comments}
}

// List handles GET /api/deal-rooms
func (h *DealRoomHandler) List(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	rooms, err := h.rooms.List(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rooms)
}

type createRoomAssetRequest struct {
	FileID      string `json:"fileId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Section     string `json:"section"`
	Order       int    `json:"order"`
}

type createRoomRequest struct {
	Name           string                   `json:"name" binding:"required" validate:"min=1,max=200"`
	Headline       string                   `json:"headline"`
	WelcomeMessage string                   `json:"welcomeMessage"`
	BrandColor     string                   `json:"brandColor" validate:"omitempty,hexcolor"`
	LogoURL        string                   `json:"logoUrl" validate:"omitempty,max=2048"`
	RequireEmail   bool                     `json:"requireEmail"`
	Password       *string                  `json:"password"`
	AllowDownload  *bool                    `json:"allowDownload"`
	ExpiresAt      *time.Time               `json:"expiresAt"`
	Assets         []createRoomAssetRequest `json:"assets"`
}

// Create handles POST /api/deal-rooms
func (h *DealRoomHandler) Create(c *gin.Context) {
	identity, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body createRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid deal room payload"))
		return
	}
	if err := validator.ValidateStruct(body); err != nil {
		response.Error(c, apperrors.NewBadRequest(err.Error()))
		return
	}

	input := services.CreateRoomInput{
		Name:           body.Name,
		Headline:       body.Headline,
		WelcomeMessage: body.WelcomeMessage,
		BrandColor:     body.BrandColor,
		LogoURL:        body.LogoURL,
		RequireEmail:   body.RequireEmail,
		Password:       body.Password,
		AllowDownload:  body.AllowDownload,
		ExpiresAt:      body.ExpiresAt,
		CreatedByID:    identity.UserID,
		OrganizationID: orgID,
	}
	for _, a := range body.Assets {
		input.Assets = append(input.Assets, services.CreateRoomAssetInput{
			FileID:      a.FileID,
			Title:       a.Title,
			Description: a.Description,
			Section:     a.Section,
			Position:    a.Order,
		})
	}

	room, err := h.rooms.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, room)
}

// Get handles GET /api/deal-rooms/:id
func (h *DealRoomHandler) Get(c *gin.Context) {
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

	detail, err := h.rooms.Detail(ctx, room)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

type updateRoomRequest struct {
	Name           *string    `json:"name"`
	Headline       *string    `json:"headline"`
	WelcomeMessage *string    `json:"welcomeMessage"`
	BrandColor     *string    `json:"brandColor"`
	LogoURL        *string    `json:"logoUrl"`
	Status         *string    `json:"status"`
	RequireEmail   *bool      `json:"requireEmail"`
	Password       *string    `json:"password"`
	ClearPassword  bool       `json:"clearPassword"`
	AllowDownload  *bool      `json:"allowDownload"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	ClearExpiresAt bool       `json:"clearExpiresAt"`
}

// Update handles PUT /api/deal-rooms/:id
func (h *DealRoomHandler) Update(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body updateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid deal room payload"))
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	updated, err := h.rooms.Update(ctx, room.ID, services.UpdateRoomInput{
		Name:           body.Name,
		Headline:       body.Headline,
		WelcomeMessage: body.WelcomeMessage,
		BrandColor:     body.BrandColor,
		LogoURL:        body.LogoURL,
		Status:         body.Status,
		RequireEmail:   body.RequireEmail,
		Password:       body.Password,
		ClearPassword:  body.ClearPassword,
		AllowDownload:  body.AllowDownload,
		ExpiresAt:      body.ExpiresAt,
		ClearExpiresAt: body.ClearExpiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Publish handles PUT /api/deal-rooms/:id/publish
func (h *DealRoomHandler) Publish(c *gin.Context) {
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

	published, err := h.rooms.Publish(ctx, room.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, published)
}

// Delete handles DELETE /api/deal-rooms/:id
func (h *DealRoomHandler) Delete(c *gin.Context) {
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

	if err := h.rooms.Delete(ctx, room.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func roomError(err error) error {
	if errors.Is(err, services.ErrRoomNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
