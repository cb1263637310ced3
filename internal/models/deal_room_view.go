package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device classes derived from the visitor's user agent.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// DealRoomView records one prospect visit. Duration holds the absolute
// cumulative seconds pushed by the viewer's periodic beacon.
type DealRoomView struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	DealRoomID    string    `gorm:"index;not null" json:"dealRoomId"`
	VisitorID     string    `gorm:"not null" json:"visitorId"`
	ViewerEmail   string    `json:"viewerEmail,omitempty"`
	ViewerName    string    `json:"viewerName,omitempty"`
	ViewerCompany string    `json:"viewerCompany,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
	Device        string    `json:"device"`
	Referrer      string    `json:"referrer,omitempty"`
	Duration      int       `gorm:"not null;default:0" json:"duration"`
	ViewedAt      time.Time `gorm:"index;autoCreateTime" json:"viewedAt"`
}

// BeforeCreate mirrors BaseModel's UUID hook for the custom primary key.
func (v *DealRoomView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
