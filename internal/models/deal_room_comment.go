package models

// Comment author roles. The role is fixed by the endpoint that accepted the
// post: seller routes always write seller, public routes always prospect.
const (
	CommentRoleSeller   = "seller"
	CommentRoleProspect = "prospect"
)

// DealRoomComment is one entry in a room's append-only thread.
type DealRoomComment struct {
	BaseModel

	DealRoomID   string `gorm:"index;not null" json:"dealRoomId"`
	AuthorName   string `gorm:"not null" json:"authorName"`
	AuthorEmail  string `json:"authorEmail,omitempty"`
	AuthorRole   string `gorm:"not null" json:"authorRole"`
	AuthorUserID string `json:"authorUserId,omitempty"`
	Message      string `gorm:"not null" json:"message"`
}
