package models

import "time"

// Deal room lifecycle states.
const (
	RoomStatusDraft     = "draft"
	RoomStatusPublished = "published"
	RoomStatusExpired   = "expired"
	RoomStatusArchived  = "archived"
)

// DealRoom is a branded, shareable collection of files for a sales prospect.
// The share token is assigned at creation and never rotates.
type DealRoom struct {
	BaseModel

	Name           string     `gorm:"not null" json:"name"`
	Headline       string     `json:"headline,omitempty"`
	WelcomeMessage string     `json:"welcomeMessage,omitempty"`
	BrandColor     string     `json:"brandColor,omitempty"`
	LogoURL        string     `json:"logoUrl,omitempty"`
	Status         string     `gorm:"not null;default:draft;index" json:"status"`
	ShareToken     string     `gorm:"uniqueIndex;not null" json:"shareToken"`
	RequireEmail   bool       `gorm:"not null;default:false" json:"requireEmail"`
	Password       *string    `json:"-"`
	AllowDownload  bool       `gorm:"not null;default:true" json:"allowDownload"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedByID    string     `gorm:"index;not null" json:"createdById"`
	OrganizationID string     `gorm:"index;not null" json:"organizationId"`

	Assets   []DealRoomAsset   `gorm:"foreignKey:DealRoomID" json:"assets,omitempty"`
	Views    []DealRoomView    `gorm:"foreignKey:DealRoomID" json:"views,omitempty"`
	Comments []DealRoomComment `gorm:"foreignKey:DealRoomID" json:"comments,omitempty"`
}

// HasPassword reports whether the room is gated by a password.
func (r *DealRoom) HasPassword() bool {
	return r != nil && r.Password != nil && *r.Password != ""
}

// Expired reports whether the room's expiry timestamp has passed.
func (r *DealRoom) Expired(now time.Time) bool {
	return r != nil && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}
