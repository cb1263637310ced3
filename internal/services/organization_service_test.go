package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealdock/dealdock/internal/database/testutil"
	"github.com/dealdock/dealdock/internal/models"
)

func TestOrganizationServiceEnsureMembershipProvisions(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	svc, err := NewOrganizationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	identity := Identity{
		UserID:    "auth0|1234567890abcdef",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Adams",
	}

	orgID, err := svc.EnsureMembership(ctx, identity)
	require.NoError(t, err)
	require.NotEmpty(t, orgID)

	org, err := svc.Get(ctx, orgID)
	require.NoError(t, err)
	require.Equal(t, "My Organization", org.Name)
	require.Equal(t, "org-auth0|12", org.Slug)
	require.Equal(t, models.DefaultBrandColor, org.BrandColor)

	var member models.OrganizationMember
	require.NoError(t, db.First(&member, "user_id = ?", identity.UserID).Error)
	require.Equal(t, models.RoleOwner, member.Role)
	require.Equal(t, orgID, member.OrganizationID)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", identity.UserID).Error)
	require.Equal(t, "alice@example.com", user.Email)
}

func TestOrganizationServiceEnsureMembershipIdempotent(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	svc, err := NewOrganizationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	identity := Identity{UserID: "user-repeat", Email: "repeat@example.com"}

	first, err := svc.EnsureMembership(ctx, identity)
	require.NoError(t, err)

	second, err := svc.EnsureMembership(ctx, identity)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&models.OrganizationMember{}).Where("user_id = ?", identity.UserID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestOrganizationServiceUpdate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	svc, err := NewOrganizationService(db)
	require.NoError(t, err)

	ctx := context.Background()
	orgID, err := svc.EnsureMembership(ctx, Identity{UserID: "user-settings", Email: "settings@example.com"})
	require.NoError(t, err)

	name := "Acme Sales"
	color := "#FF0000"
	updated, err := svc.Update(ctx, orgID, UpdateOrganizationInput{
		Name:       &name,
		BrandColor: &color,
		Settings:   []byte(`{"emailGate":true}`),
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Sales", updated.Name)
	require.Equal(t, "#FF0000", updated.BrandColor)
	require.JSONEq(t, `{"emailGate":true}`, string(updated.Settings))
}

func TestIdentityDisplayName(t *testing.T) {
	require.Equal(t, "Alice Adams", Identity{FirstName: "Alice", LastName: "Adams"}.DisplayName())
	require.Equal(t, "Alice", Identity{FirstName: "Alice"}.DisplayName())
	require.Equal(t, "a@b.co", Identity{Email: "a@b.co"}.DisplayName())
}
