package models

type File struct {
	BaseModel

	FileName       string `gorm:"not null" json:"fileName"`
	FileURL        string `gorm:"not null" json:"fileUrl"`
	FileType       string `gorm:"not null" json:"fileType"`
	FileSize       int64  `gorm:"not null" json:"fileSize"`
	UploadedByID   string `gorm:"index;not null" json:"uploadedById"`
	OrganizationID string `gorm:"index;not null" json:"organizationId"`
}
