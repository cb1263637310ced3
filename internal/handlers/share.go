package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/models"
	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/metrics"
	"github.com/dealdock/dealdock/pkg/response"
)

// ShareHandler serves the unauthenticated share-link surface: prospects
// resolve rooms by token and engagement events flow back through it.
type ShareHandler struct {
	shares   *services.ShareService
	rooms    *services.RoomService
	comments *services.CommentService
}

func NewShareHandler(
	shares *services.ShareService,
	rooms *services.RoomService,
	comments *services.CommentService,
) *ShareHandler {
	return &ShareHandler{shares: shares, rooms: rooms, comments: comments}
}

// sharePayload is the prospect view of a room. The gate password never
// leaves the server; only its presence does.
type sharePayload struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Headline       string                 `json:"headline"`
	WelcomeMessage string                 `json:"welcomeMessage"`
	BrandColor     string                 `json:"brandColor"`
	LogoURL        string                 `json:"logoUrl"`
	RequireEmail   bool                   `json:"requireEmail"`
	HasPassword    bool                   `json:"hasPassword"`
	AllowDownload  bool                   `json:"allowDownload"`
	ExpiresAt      *time.Time             `json:"expiresAt"`
	Assets         []models.DealRoomAsset `json:"assets"`
}

// Resolve handles GET /api/share/:token
func (h *ShareHandler) Resolve(c *gin.Context) {
	ctx := requestContext(c)
	room, err := h.shares.Resolve(ctx, c.Param("token"))
	if err != nil {
		response.Error(c, shareError(err))
		return
	}

	assets, err := h.rooms.Assets(ctx, room.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sharePayload{
		ID:             room.ID,
		Name:           room.Name,
		Headline:       room.Headline,
		WelcomeMessage: room.WelcomeMessage,
		BrandColor:     room.BrandColor,
		LogoURL:        room.LogoURL,
		RequireEmail:   room.RequireEmail,
		HasPassword:    room.HasPassword(),
		AllowDownload:  room.AllowDownload,
		ExpiresAt:      room.ExpiresAt,
		Assets:         assets,
	})
}

type verifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword handles POST /api/share/:token/verify
func (h *ShareHandler) VerifyPassword(c *gin.Context) {
	var body verifyPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("password is required"))
		return
	}

	if err := h.shares.VerifyPassword(requestContext(c), c.Param("token"), body.Password); err != nil {
		response.Error(c, shareError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true})
}

type trackViewRequest struct {
	VisitorID     string `json:"visitorId"`
	ViewerEmail   string `json:"viewerEmail"`
	ViewerName    string `json:"viewerName"`
	ViewerCompany string `json:"viewerCompany"`
	Referrer      string `json:"referrer"`
}

// TrackView handles POST /api/share/:token/track
func (h *ShareHandler) TrackView(c *gin.Context) {
	// Every tracking field is optional; an empty or absent body still counts
	// as a view.
	var body trackViewRequest
	_ = c.ShouldBindJSON(&body)

	view, err := h.shares.TrackView(requestContext(c), c.Param("token"), services.TrackViewInput{
		VisitorID:     body.VisitorID,
		ViewerEmail:   body.ViewerEmail,
		ViewerName:    body.ViewerName,
		ViewerCompany: body.ViewerCompany,
		UserAgent:     c.GetHeader("User-Agent"),
		Referrer:      body.Referrer,
	})
	if err != nil {
		response.Error(c, shareError(err))
		return
	}

	metrics.ShareViews.Inc()
	response.Success(c, http.StatusCreated, gin.H{"viewId": view.ID, "visitorId": view.VisitorID})
}

type recordClickRequest struct {
	AssetID string `json:"assetId"`
	ViewID  string `json:"viewId"`
}

// RecordClick handles POST /api/share/:token/click
func (h *ShareHandler) RecordClick(c *gin.Context) {
	var body recordClickRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid click payload"))
		return
	}
	if body.AssetID == "" || body.ViewID == "" {
		response.Error(c, apperrors.NewBadRequest("assetId and viewId are required"))
		return
	}

	click, err := h.shares.RecordClick(requestContext(c), body.AssetID, body.ViewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.AssetClicks.Inc()
	response.Success(c, http.StatusCreated, click)
}

type recordDurationRequest struct {
	ViewID   string `json:"viewId" binding:"required"`
	Duration int    `json:"duration"`
}

// RecordDuration handles POST /api/share/:token/duration
func (h *ShareHandler) RecordDuration(c *gin.Context) {
	var body recordDurationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("viewId is required"))
		return
	}

	if err := h.shares.RecordDuration(requestContext(c), body.ViewID, body.Duration); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

// ListComments handles GET /api/share/:token/comments. The room must pass
// the same availability gate as Resolve.
func (h *ShareHandler) ListComments(c *gin.Context) {
	ctx := requestContext(c)
	room, err := h.shares.Resolve(ctx, c.Param("token"))
	if err != nil {
		response.Error(c, shareError(err))
		return
	}

	comments, err := h.comments.ListForRoom(ctx, room.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments)
}

type postCommentRequest struct {
	AuthorName  string `json:"authorName" binding:"required"`
	AuthorEmail string `json:"authorEmail"`
	Message     string `json:"message" binding:"required"`
}

// PostComment handles POST /api/share/:token/comments
func (h *ShareHandler) PostComment(c *gin.Context) {
	var body postCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("author name and message are required"))
		return
	}

	ctx := requestContext(c)
	room, err := h.shares.Resolve(ctx, c.Param("token"))
	if err != nil {
		response.Error(c, shareError(err))
		return
	}

	comment, err := h.comments.PostProspect(ctx, room.ID, services.PostCommentInput{
		AuthorName:  body.AuthorName,
		AuthorEmail: body.AuthorEmail,
		Message:     body.Message,
	})
	if err != nil {
		response.Error(c, commentError(err))
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

func shareError(err error) error {
	switch {
	case errors.Is(err, services.ErrShareNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, services.ErrShareNotAvailable):
		return apperrors.ErrRoomNotAvailable
	case errors.Is(err, services.ErrShareExpired):
		return apperrors.ErrRoomExpired
	case errors.Is(err, services.ErrSharePasswordMismatch):
		return apperrors.ErrInvalidPassword
	}
	return err
}

func commentError(err error) error {
	if errors.Is(err, services.ErrCommentInvalid) {
		return apperrors.NewBadRequest("author name and message are required")
	}
	return err
}
