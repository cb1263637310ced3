package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrAssetNotFound indicates the asset does not exist within the room.
	ErrAssetNotFound = errors.New("asset service: asset not found")
)

// AssetService manages the files attached to a deal room.
type AssetService struct {
	db *gorm.DB
}

// NewAssetService constructs an asset service once a database handle is supplied.
func NewAssetService(db *gorm.DB) (*AssetService, error) {
	if db == nil {
		return nil, errors.New("asset service: db is required")
	}
	return &AssetService{db: db}, nil
}

// AddAssetInput captures required fields when attaching a file to a room.
type AddAssetInput struct {
	FileID      string
	Title       string
	Description string
	Section     string
	Position    int
}

// Add attaches a file to a room with display metadata.
func (s *AssetService) Add(ctx context.Context, roomID string, input AddAssetInput) (*models.DealRoomAsset, error) {
	if s == nil {
		return nil, errors.New("asset service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	fileID := strings.TrimSpace(input.FileID)
	title := strings.TrimSpace(input.Title)
	if fileID == "" {
		return nil, errors.New("asset service: file id is required")
	}
	if title == "" {
		return nil, errors.New("asset service: title is required")
	}

	asset := models.DealRoomAsset{
		DealRoomID:  roomID,
		FileID:      fileID,
		Title:       title,
		Description: input.Description,
		Section:     input.Section,
		Position:    input.Position,
	}
	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAssetInput describes mutable asset fields. A nil pointer indicates no change.
type UpdateAssetInput struct {
	Title       *string
	Description *string
	Section     *string
	Position    *int
}

// Update applies display metadata changes to an asset of the room.
func (s *AssetService) Update(ctx context.Context, roomID, assetID string, input UpdateAssetInput) (*models.DealRoomAsset, error) {
	if s == nil {
		return nil, errors.New("asset service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	asset, err := s.get(ctx, roomID, assetID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("asset service: title is required")
		}
		asset.Title = title
	}
	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.Section != nil {
		asset.Section = *input.Section
	}
	if input.Position != nil {
		asset.Position = *input.Position
	}

	if err := s.db.WithContext(ctx).Save(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// Remove detaches an asset from its room.
func (s *AssetService) Remove(ctx context.Context, roomID, assetID string) error {
	if s == nil {
		return errors.New("asset service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if _, err := s.get(ctx, roomID, assetID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.DealRoomAsset{}, "id = ?", assetID).Error
}

// Reorder rewrites the position of every listed asset in one transaction.
// The client sends the full ordered id list; ids outside the room reject the
// whole operation.
func (s *AssetService) Reorder(ctx context.Context, roomID string, orderedIDs []string) error {
	if s == nil {
		return errors.New("asset service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if len(orderedIDs) == 0 {
		return errors.New("asset service: asset ids are required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []string
		err := tx.Model(&models.DealRoomAsset{}).
			Where("deal_room_id = ?", roomID).
			Pluck("id", &owned).Error
		if err != nil {
			return err
		}

		ownedSet := make(map[string]struct{}, len(owned))
		for _, id := range owned {
			ownedSet[id] = struct{}{}
		}
		for _, id := range orderedIDs {
			if _, ok := ownedSet[id]; !ok {
				return ErrAssetNotFound
			}
		}

		for position, id := range orderedIDs {
			err := tx.Model(&models.DealRoomAsset{}).
				Where("id = ?", id).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AssetService) get(ctx context.Context, roomID, assetID string) (*models.DealRoomAsset, error) {
	var asset models.DealRoomAsset
	err := s.db.WithContext(ctx).
		First(&asset, "id = ? AND deal_room_id = ?", assetID, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}
