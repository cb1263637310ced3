package models

import "gorm.io/datatypes"

const DefaultBrandColor = "#2563EB"

type Organization struct {
	BaseModel

	Name       string         `gorm:"not null" json:"name"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	LogoURL    string         `json:"logoUrl,omitempty"`
	BrandColor string         `gorm:"default:#2563EB" json:"brandColor"`
	Settings   datatypes.JSON `json:"settings,omitempty"`

	Members   []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Files     []File               `gorm:"foreignKey:OrganizationID" json:"files,omitempty"`
	DealRooms []DealRoom           `gorm:"foreignKey:OrganizationID" json:"dealRooms,omitempty"`
}
