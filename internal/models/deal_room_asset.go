package models

// DealRoomAsset joins a file into a room with per-room display metadata.
// Position drives the display sequence within a section; the wire field is
// "order" to keep the original payload shape.
type DealRoomAsset struct {
	BaseModel

	DealRoomID  string `gorm:"index;not null" json:"dealRoomId"`
	FileID      string `gorm:"index;not null" json:"fileId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`
	Section     string `json:"section,omitempty"`
	Position    int    `gorm:"not null;default:0" json:"order"`

	File *File `gorm:"foreignKey:FileID" json:"file,omitempty"`
}
