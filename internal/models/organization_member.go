package models

// Membership roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// OrganizationMember links a user to an organization with a role.
// The unique index on UserID caps every user at one membership, which makes
// the lazy get-or-create path race-safe.
type OrganizationMember struct {
	BaseModel

	UserID         string `gorm:"uniqueIndex;not null" json:"userId"`
	OrganizationID string `gorm:"index;not null" json:"organizationId"`
	Role           string `gorm:"not null;default:member" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
