package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrMemberNotFound indicates the member does not exist within the organization.
	ErrMemberNotFound = errors.New("member service: member not found")
	// ErrOwnerRoleImmutable indicates an attempt to change the owner's role.
	ErrOwnerRoleImmutable = errors.New("member service: owner role cannot be changed")
	// ErrInvalidRole indicates a role outside the accepted set.
	ErrInvalidRole = errors.New("member service: invalid role")
)

// MemberService manages organization memberships.
type MemberService struct {
	db *gorm.DB
}

// NewMemberService constructs a member service once a database handle is supplied.
func NewMemberService(db *gorm.DB) (*MemberService, error) {
	if db == nil {
		return nil, errors.New("member service: db is required")
	}
	return &MemberService{db: db}, nil
}

// List returns the organization's members with their user records attached.
func (s *MemberService) List(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	if s == nil {
		return nil, errors.New("member service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var members []models.OrganizationMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateRole changes a member's role within the organization. The owner row is
// immutable and the owner role can never be assigned through this path.
func (s *MemberService) UpdateRole(ctx context.Context, orgID, memberID, role string) (*models.OrganizationMember, error) {
	if s == nil {
		return nil, errors.New("member service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case models.RoleAdmin, models.RoleMember:
	case models.RoleOwner:
		return nil, ErrOwnerRoleImmutable
	default:
		return nil, ErrInvalidRole
	}

	var member models.OrganizationMember
	err := s.db.WithContext(ctx).
		First(&member, "id = ? AND organization_id = ?", memberID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if member.Role == models.RoleOwner {
		return nil, ErrOwnerRoleImmutable
	}

	member.Role = role
	if err := s.db.WithContext(ctx).Save(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
