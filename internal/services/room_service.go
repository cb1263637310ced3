package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrRoomNotFound indicates the requested deal room does not exist.
	ErrRoomNotFound = errors.New("room service: deal room not found")
)

// RoomService manages deal room lifecycle and composition.
type RoomService struct {
	db *gorm.DB
}

// NewRoomService constructs a room service once a database handle is supplied.
func NewRoomService(db *gorm.DB) (*RoomService, error) {
	if db == nil {
		return nil, errors.New("room service: db is required")
	}
	return &RoomService{db: db}, nil
}

// List returns the organization's deal rooms, newest first.
func (s *RoomService) List(ctx context.Context, orgID string) ([]models.DealRoom, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var rooms []models.DealRoom
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoomAssetInput describes an asset attached at room creation time.
type CreateRoomAssetInput struct {
	FileID      string
	Title       string
	Description string
	Section     string
	Position    int
}

// CreateRoomInput captures fields for a new deal room. Rooms always start as
// drafts with a freshly generated share token.
type CreateRoomInput struct {
	Name           string
	Headline       string
	WelcomeMessage string
	BrandColor     string
	LogoURL        string
	RequireEmail   bool
	Password       *string
	AllowDownload  *bool
	ExpiresAt      *time.Time
	CreatedByID    string
	OrganizationID string
	Assets         []CreateRoomAssetInput
}

// Create persists a new deal room and its initial assets.
func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*models.DealRoom, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("room service: name is required")
	}

	allowDownload := true
	if input.AllowDownload != nil {
		allowDownload = *input.AllowDownload
	}

	room := models.DealRoom{
		Name:           name,
		Headline:       strings.TrimSpace(input.Headline),
		WelcomeMessage: input.WelcomeMessage,
		BrandColor:     strings.TrimSpace(input.BrandColor),
		LogoURL:        strings.TrimSpace(input.LogoURL),
		Status:         models.RoomStatusDraft,
		ShareToken:     uuid.NewString(),
		RequireEmail:   input.RequireEmail,
		Password:       input.Password,
		AllowDownload:  allowDownload,
		ExpiresAt:      input.ExpiresAt,
		CreatedByID:    input.CreatedByID,
		OrganizationID: input.OrganizationID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		for _, a := range input.Assets {
			asset := models.DealRoomAsset{
				DealRoomID:  room.ID,
				FileID:      a.FileID,
				Title:       strings.TrimSpace(a.Title),
				Description: a.Description,
				Section:     a.Section,
				Position:    a.Position,
			}
			if err := tx.Create(&asset).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Get retrieves a deal room by identifier.
func (s *RoomService) Get(ctx context.Context, id string) (*models.DealRoom, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var room models.DealRoom
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// GetForOrg retrieves a deal room only when it belongs to the organization.
// A room owned by another tenant is indistinguishable from a missing one.
func (s *RoomService) GetForOrg(ctx context.Context, id, orgID string) (*models.DealRoom, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.OrganizationID != orgID {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// RoomDetail bundles a room with its assets, views, and click rollup.
type RoomDetail struct {
	models.DealRoom
	Assets      []models.DealRoomAsset `json:"assets"`
	Views       []models.DealRoomView  `json:"views"`
	TotalClicks int64                  `json:"totalClicks"`
}

// Detail loads the room's assets (display order, file attached), views
// (newest first), and the total click count across its assets.
func (s *RoomService) Detail(ctx context.Context, room *models.DealRoom) (*RoomDetail, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	ctx = ensuredContext(ctx)

	assets, err := s.Assets(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	var views []models.DealRoomView
	err = s.db.WithContext(ctx).
		Where("deal_room_id = ?", room.ID).
		Order("viewed_at DESC").
		Find(&views).Error
	if err != nil {
		return nil, err
	}

	var totalClicks int64
	err = s.db.WithContext(ctx).
		Model(&models.AssetClick{}).
		Joins("JOIN deal_room_assets ON deal_room_assets.id = asset_clicks.asset_id").
		Where("deal_room_assets.deal_room_id = ?", room.ID).
		Count(&totalClicks).Error
	if err != nil {
		return nil, err
	}

	detail := RoomDetail{
		DealRoom:    *room,
		Assets:      assets,
		Views:       views,
		TotalClicks: totalClicks,
	}
	detail.DealRoom.Assets = nil
	detail.DealRoom.Views = nil
	return &detail, nil
}

// Assets returns a room's assets in display order with files attached.
func (s *RoomService) Assets(ctx context.Context, roomID string) ([]models.DealRoomAsset, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var assets []models.DealRoomAsset
	err := s.db.WithContext(ctx).
		Preload("File").
		Where("deal_room_id = ?", roomID).
		Order("position").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateRoomInput describes mutable room fields. A nil pointer indicates no change.
type UpdateRoomInput struct {
	Name           *string
	Headline       *string
	WelcomeMessage *string
	BrandColor     *string
	LogoURL        *string
	Status         *string
	RequireEmail   *bool
	Password       *string
	ClearPassword  bool
	AllowDownload  *bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
}

// Update applies the provided changes and refreshes the room's UpdatedAt.
func (s *RoomService) Update(ctx context.Context, id string, input UpdateRoomInput) (*models.DealRoom, error) {
	if s == nil {
		return nil, errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("room service: name is required")
		}
		room.Name = name
	}
	if input.Headline != nil {
		room.Headline = strings.TrimSpace(*input.Headline)
	}
	if input.WelcomeMessage != nil {
		room.WelcomeMessage = *input.WelcomeMessage
	}
	if input.BrandColor != nil {
		room.BrandColor = strings.TrimSpace(*input.BrandColor)
	}
	if input.LogoURL != nil {
		room.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		switch status {
		case models.RoomStatusDraft, models.RoomStatusPublished, models.RoomStatusExpired, models.RoomStatusArchived:
			room.Status = status
		default:
			return nil, errors.New("room service: invalid status")
		}
	}
	if input.RequireEmail != nil {
		room.RequireEmail = *input.RequireEmail
	}
	switch {
	case input.ClearPassword:
		room.Password = nil
	case input.Password != nil:
		room.Password = input.Password
	}
	if input.AllowDownload != nil {
		room.AllowDownload = *input.AllowDownload
	}
	switch {
	case input.ClearExpiresAt:
		room.ExpiresAt = nil
	case input.ExpiresAt != nil:
		room.ExpiresAt = input.ExpiresAt
	}

	room.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Publish transitions a room to the published state.
func (s *RoomService) Publish(ctx context.Context, id string) (*models.DealRoom, error) {
	status := models.RoomStatusPublished
	return s.Update(ctx, id, UpdateRoomInput{Status: &status})
}

// Delete removes a room and everything hanging off it: asset clicks, views,
// assets, and comments, in one transaction.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return errors.New("room service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assetIDs := tx.Model(&models.DealRoomAsset{}).
			Select("id").
			Where("deal_room_id = ?", id)
		if err := tx.Where("asset_id IN (?)", assetIDs).Delete(&models.AssetClick{}).Error; err != nil {
			return err
		}

		viewIDs := tx.Model(&models.DealRoomView{}).
			Select("id").
			Where("deal_room_id = ?", id)
		if err := tx.Where("view_id IN (?)", viewIDs).Delete(&models.AssetClick{}).Error; err != nil {
			return err
		}

		if err := tx.Where("deal_room_id = ?", id).Delete(&models.DealRoomView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_room_id = ?", id).Delete(&models.DealRoomAsset{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_room_id = ?", id).Delete(&models.DealRoomComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DealRoom{}, "id = ?", id).Error
	})
}
