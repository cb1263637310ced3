package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/response"
)

// ListComments handles GET /api/deal-rooms/:id/comments
func (h *DealRoomHandler) ListComments(c *gin.Context) {
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

	comments, err := h.comments.ListForRoom(ctx, room.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments)
}

type sellerCommentRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostComment handles POST /api/deal-rooms/:id/comments. The author name
// comes from the session identity, never from the payload.
func (h *DealRoomHandler) PostComment(c *gin.Context) {
	identity, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body sellerCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("message is required"))
		return
	}

	ctx := requestContext(c)
	room, err := h.rooms.GetForOrg(ctx, c.Param("id"), orgID)
	if err != nil {
		response.Error(c, roomError(err))
		return
	}

	authorName := identity.DisplayName()
	comment, err := h.comments.PostSeller(ctx, room.ID, identity.UserID, services.PostCommentInput{
		AuthorName:  authorName,
		AuthorEmail: identity.Email,
		Message:     body.Message,
	})
	if err != nil {
		response.Error(c, commentError(err))
		return
	}

	response.Success(c, http.StatusCreated, comment)
}
