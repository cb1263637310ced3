package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrFileNotFound indicates the requested file does not exist.
	ErrFileNotFound = errors.New("file service: file not found")
	// ErrFileInUse indicates the file is referenced by at least one deal room asset.
	ErrFileInUse = errors.New("file service: file is used in active deal hubs")
)

// FileService manages the organization's file library.
type FileService struct {
	db *gorm.DB
}

// NewFileService constructs a file service once a database handle is supplied.
func NewFileService(db *gorm.DB) (*FileService, error) {
	if db == nil {
		return nil, errors.New("file service: db is required")
	}
	return &FileService{db: db}, nil
}

// List returns the organization's files, newest first.
func (s *FileService) List(ctx context.Context, orgID string) ([]models.File, error) {
	if s == nil {
		return nil, errors.New("file service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var files []models.File
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// CreateFileInput captures required fields when registering an uploaded file.
type CreateFileInput struct {
	FileName       string
	FileURL        string
	FileType       string
	FileSize       int64
	UploadedByID   string
	OrganizationID string
}

// Create persists a new file record.
func (s *FileService) Create(ctx context.Context, input CreateFileInput) (*models.File, error) {
	if s == nil {
		return nil, errors.New("file service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	name := strings.TrimSpace(input.FileName)
	url := strings.TrimSpace(input.FileURL)
	if name == "" {
		return nil, errors.New("file service: file name is required")
	}
	if url == "" {
		return nil, errors.New("file service: file url is required")
	}

	file := models.File{
		FileName:       name,
		FileURL:        url,
		FileType:       strings.TrimSpace(input.FileType),
		FileSize:       input.FileSize,
		UploadedByID:   input.UploadedByID,
		OrganizationID: input.OrganizationID,
	}
	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// Get retrieves a file by identifier.
func (s *FileService) Get(ctx context.Context, id string) (*models.File, error) {
	if s == nil {
		return nil, errors.New("file service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var file models.File
	if err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// Delete removes a file unless any deal room asset still references it. The
// guard is global by file id, not scoped to the owning organization.
func (s *FileService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return errors.New("file service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var usages int64
	err := s.db.WithContext(ctx).
		Model(&models.DealRoomAsset{}).
		Where("file_id = ?", id).
		Count(&usages).Error
	if err != nil {
		return err
	}
	if usages > 0 {
		return ErrFileInUse
	}

	return s.db.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error
}
