package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetClick records one asset open, attributed to the view that produced it.
// Downloaded is written as false and never read back; the column is kept so
// the click payload keeps its historical shape.
type AssetClick struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	AssetID    string    `gorm:"index;not null" json:"assetId"`
	ViewID     string    `gorm:"index;not null" json:"viewId"`
	Duration   int       `gorm:"not null;default:0" json:"duration"`
	Downloaded bool      `gorm:"not null;default:false" json:"downloaded"`
	ClickedAt  time.Time `gorm:"index;autoCreateTime" json:"clickedAt"`
}

func (c *AssetClick) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
