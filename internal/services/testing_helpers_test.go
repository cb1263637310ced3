package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()

	user := models.User{
		BaseModel: models.BaseModel{ID: id},
		Email:     id + "@example.com",
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedOrg(t *testing.T, db *gorm.DB, slug string) models.Organization {
	t.Helper()

	org := models.Organization{
		Name: "Acme Sales",
		Slug: slug,
	}
	require.NoError(t, db.Create(&org).Error)
	return org
}

func seedFile(t *testing.T, db *gorm.DB, orgID, userID, name string) models.File {
	t.Helper()

	file := models.File{
		FileName:       name,
		FileURL:        "/objects/uploads/" + name,
		FileType:       "application/pdf",
		FileSize:       1024,
		UploadedByID:   userID,
		OrganizationID: orgID,
	}
	require.NoError(t, db.Create(&file).Error)
	return file
}

func seedRoom(t *testing.T, db *gorm.DB, orgID, userID string, mutate ...func(*models.DealRoom)) models.DealRoom {
	t.Helper()

	room := models.DealRoom{
		Name:           "Q3 Enterprise Deal",
		Status:         models.RoomStatusDraft,
		ShareToken:     uuid.NewString(),
		AllowDownload:  true,
		CreatedByID:    userID,
		OrganizationID: orgID,
	}
	for _, fn := range mutate {
		fn(&room)
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedAsset(t *testing.T, db *gorm.DB, roomID, fileID string, position int) models.DealRoomAsset {
	t.Helper()

	asset := models.DealRoomAsset{
		DealRoomID: roomID,
		FileID:     fileID,
		Title:      "Proposal",
		Position:   position,
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}
