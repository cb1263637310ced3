package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrOrganizationNotFound indicates the requested organization does not exist.
	ErrOrganizationNotFound = errors.New("organization service: organization not found")
)

const defaultOrganizationName = "My Organization"

// Identity carries the token claims used to provision users and memberships.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// DisplayName renders the identity as an author name, falling back to the
// email address when no name claims were present.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
	if name != "" {
		return name
	}
	return i.Email
}

// OrganizationService resolves the tenant scope for authenticated users and
// manages organization settings.
type OrganizationService struct {
	db *gorm.DB
}

// NewOrganizationService constructs an organization service once a database handle is supplied.
func NewOrganizationService(db *gorm.DB) (*OrganizationService, error) {
	if db == nil {
		return nil, errors.New("organization service: db is required")
	}
	return &OrganizationService{db: db}, nil
}

// EnsureMembership returns the organization id scoping all of the user's
// operations, creating the organization and an owner membership on first
// call. The unique index on organization_members.user_id makes a concurrent
// double-call collapse into a single membership: the loser of the race
// re-reads the winner's row.
func (s *OrganizationService) EnsureMembership(ctx context.Context, identity Identity) (string, error) {
	if s == nil {
		return "", errors.New("organization service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	userID := strings.TrimSpace(identity.UserID)
	if userID == "" {
		return "", errors.New("organization service: user id is required")
	}

	if err := s.ensureUser(ctx, identity); err != nil {
		return "", err
	}

	var member models.OrganizationMember
	err := s.db.WithContext(ctx).First(&member, "user_id = ?", userID).Error
	if err == nil {
		return member.OrganizationID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	orgID, createErr := s.createMembership(ctx, userID)
	if createErr == nil {
		return orgID, nil
	}

	// Lost the creation race: the unique user_id index rejected our row,
	// so the membership must exist now.
	if reread := s.db.WithContext(ctx).First(&member, "user_id = ?", userID).Error; reread == nil {
		return member.OrganizationID, nil
	}

	return "", createErr
}

func (s *OrganizationService) createMembership(ctx context.Context, userID string) (string, error) {
	var orgID string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug := organizationSlug(userID)

		var org models.Organization
		err := tx.First(&org, "slug = ?", slug).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			org = models.Organization{
				Name:       defaultOrganizationName,
				Slug:       slug,
				BrandColor: models.DefaultBrandColor,
			}
			if err := tx.Create(&org).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		member := models.OrganizationMember{
			UserID:         userID,
			OrganizationID: org.ID,
			Role:           models.RoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		orgID = org.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return orgID, nil
}

func (s *OrganizationService) ensureUser(ctx context.Context, identity Identity) error {
	var user models.User
	return s.db.WithContext(ctx).
		Where("id = ?", identity.UserID).
		Attrs(models.User{
			BaseModel: models.BaseModel{ID: identity.UserID},
			Email:     strings.TrimSpace(identity.Email),
			FirstName: strings.TrimSpace(identity.FirstName),
			LastName:  strings.TrimSpace(identity.LastName),
			AvatarURL: strings.TrimSpace(identity.AvatarURL),
		}).
		FirstOrCreate(&user).Error
}

// Get retrieves an organization by identifier.
func (s *OrganizationService) Get(ctx context.Context, id string) (*models.Organization, error) {
	if s == nil {
		return nil, errors.New("organization service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// UpdateOrganizationInput describes mutable organization fields. A nil pointer indicates no change.
type UpdateOrganizationInput struct {
	Name       *string
	LogoURL    *string
	BrandColor *string
	Settings   datatypes.JSON
}

// Update applies the provided changes to an organization.
func (s *OrganizationService) Update(ctx context.Context, id string, input UpdateOrganizationInput) (*models.Organization, error) {
	if s == nil {
		return nil, errors.New("organization service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = strings.TrimSpace(*input.Name)
		if org.Name == "" {
			return nil, errors.New("organization service: name is required")
		}
	}
	if input.LogoURL != nil {
		org.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.BrandColor != nil {
		org.BrandColor = strings.TrimSpace(*input.BrandColor)
	}
	if input.Settings != nil {
		org.Settings = input.Settings
	}

	if err := s.db.WithContext(ctx).Save(org).Error; err != nil {
		return nil, err
	}
	return org, nil
}

func organizationSlug(userID string) string {
	prefix := userID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("org-%s", prefix)
}
