package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealdock/dealdock/internal/database/testutil"
	"github.com/dealdock/dealdock/internal/models"
)

func TestMemberServiceListWithUsers(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	org := seedOrg(t, db, "org-members")
	owner := seedUser(t, db, "user-owner")
	admin := seedUser(t, db, "user-admin")
	require.NoError(t, db.Create(&models.OrganizationMember{UserID: owner.ID, OrganizationID: org.ID, Role: models.RoleOwner}).Error)
	require.NoError(t, db.Create(&models.OrganizationMember{UserID: admin.ID, OrganizationID: org.ID, Role: models.RoleAdmin}).Error)

	svc, err := NewMemberService(db)
	require.NoError(t, err)

	members, err := svc.List(context.Background(), org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.NotNil(t, members[0].User)
	require.Equal(t, owner.ID, members[0].User.ID)
}

func TestMemberServiceUpdateRole(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	org := seedOrg(t, db, "org-roles")
	user := seedUser(t, db, "user-role")
	member := models.OrganizationMember{UserID: user.ID, OrganizationID: org.ID, Role: models.RoleMember}
	require.NoError(t, db.Create(&member).Error)

	svc, err := NewMemberService(db)
	require.NoError(t, err)

	ctx := context.Background()
	updated, err := svc.UpdateRole(ctx, org.ID, member.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(ctx, org.ID, member.ID, "superuser")
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateRole(ctx, "org-elsewhere", member.ID, models.RoleMember)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberServiceOwnerRoleImmutable(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	org := seedOrg(t, db, "org-immutable")
	user := seedUser(t, db, "user-immutable")
	member := models.OrganizationMember{UserID: user.ID, OrganizationID: org.ID, Role: models.RoleOwner}
	require.NoError(t, db.Create(&member).Error)

	svc, err := NewMemberService(db)
	require.NoError(t, err)

	_, err = svc.UpdateRole(context.Background(), org.ID, member.ID, models.RoleMember)
	require.ErrorIs(t, err, ErrOwnerRoleImmutable)

	var stored models.OrganizationMember
	require.NoError(t, db.First(&stored, "id = ?", member.ID).Error)
	require.Equal(t, models.RoleOwner, stored.Role)
}
