package database

import (
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.File{},
		&models.DealRoom{},
		&models.DealRoomAsset{},
		&models.DealRoomView{},
		&models.AssetClick{},
		&models.DealRoomComment{},
	)
}
