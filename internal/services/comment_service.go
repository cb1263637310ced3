package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrCommentInvalid indicates a comment missing its required fields.
	ErrCommentInvalid = errors.New("comment service: author name and message are required")
)

// CommentService manages the append-only comment thread of a deal room. The
// author role is fixed by the entrypoint: seller posts carry the internal
// user id, prospect posts never do.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService constructs a comment service once a database handle is supplied.
func NewCommentService(db *gorm.DB) (*CommentService, error) {
	if db == nil {
		return nil, errors.New("comment service: db is required")
	}
	return &CommentService{db: db}, nil
}

// ListForRoom returns the room's comments, oldest first.
func (s *CommentService) ListForRoom(ctx context.Context, roomID string) ([]models.DealRoomComment, error) {
	if s == nil {
		return nil, errors.New("comment service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var comments []models.DealRoomComment
	err := s.db.WithContext(ctx).
		Where("deal_room_id = ?", roomID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// PostCommentInput captures the author fields for a new comment.
type PostCommentInput struct {
	AuthorName  string
	AuthorEmail string
	Message     string
}

// PostSeller appends a seller comment attributed to the internal user.
func (s *CommentService) PostSeller(ctx context.Context, roomID, userID string, input PostCommentInput) (*models.DealRoomComment, error) {
	return s.post(ctx, roomID, models.CommentRoleSeller, userID, input)
}

// PostProspect appends a prospect comment from the public surface.
func (s *CommentService) PostProspect(ctx context.Context, roomID string, input PostCommentInput) (*models.DealRoomComment, error) {
	return s.post(ctx, roomID, models.CommentRoleProspect, "", input)
}

func (s *CommentService) post(ctx context.Context, roomID, role, userID string, input PostCommentInput) (*models.DealRoomComment, error) {
	if s == nil {
		return nil, errors.New("comment service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	name := strings.TrimSpace(input.AuthorName)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, ErrCommentInvalid
	}

	comment := models.DealRoomComment{
		DealRoomID:   roomID,
		AuthorName:   name,
		AuthorEmail:  strings.TrimSpace(input.AuthorEmail),
		AuthorRole:   role,
		AuthorUserID: userID,
		Message:      message,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
