package models

// User mirrors the identity provider's subject. Rows are provisioned lazily
// from token claims on first authenticated request; credentials never live here.
type User struct {
	BaseModel

	Email     string `gorm:"uniqueIndex" json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
