package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealdock/dealdock/internal/database/testutil"
	"github.com/dealdock/dealdock/internal/models"
)

func TestAssetServiceAddAndUpdate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := seedUser(t, db, "user-asset")
	org := seedOrg(t, db, "org-asset")
	file := seedFile(t, db, org.ID, user.ID, "terms.pdf")
	room := seedRoom(t, db, org.ID, user.ID)

	svc, err := NewAssetService(db)
	require.NoError(t, err)

	ctx := context.Background()
	asset, err := svc.Add(ctx, room.ID, AddAssetInput{
		FileID:   file.ID,
		Title:    "Terms",
		Section:  "Legal",
		Position: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, asset.Position)

	title := "Updated Terms"
	position := 0
	updated, err := svc.Update(ctx, room.ID, asset.ID, UpdateAssetInput{
		Title:    &title,
		Position: &position,
	})
	require.NoError(t, err)
	require.Equal(t, "Updated Terms", updated.Title)
	require.Zero(t, updated.Position)
	require.Equal(t, "Legal", updated.Section)
}

func TestAssetServiceUpdateScopedToRoom(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := seedUser(t, db, "user-scoped")
	org := seedOrg(t, db, "org-scoped")
	file := seedFile(t, db, org.ID, user.ID, "scoped.pdf")
	room := seedRoom(t, db, org.ID, user.ID)
	otherRoom := seedRoom(t, db, org.ID, user.ID)
	asset := seedAsset(t, db, room.ID, file.ID, 0)

	svc, err := NewAssetService(db)
	require.NoError(t, err)

	title := "Hijack"
	_, err = svc.Update(context.Background(), otherRoom.ID, asset.ID, UpdateAssetInput{Title: &title})
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAssetServiceRemove(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := seedUser(t, db, "user-remove")
	org := seedOrg(t, db, "org-remove")
	file := seedFile(t, db, org.ID, user.ID, "remove.pdf")
	room := seedRoom(t, db, org.ID, user.ID)
	asset := seedAsset(t, db, room.ID, file.ID, 0)

	svc, err := NewAssetService(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Remove(ctx, room.ID, asset.ID))
	require.ErrorIs(t, svc.Remove(ctx, room.ID, asset.ID), ErrAssetNotFound)
}

func TestAssetServiceReorder(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := seedUser(t, db, "user-reorder")
	org := seedOrg(t, db, "org-reorder")
	file := seedFile(t, db, org.ID, user.ID, "reorder.pdf")
	room := seedRoom(t, db, org.ID, user.ID)
	first := seedAsset(t, db, room.ID, file.ID, 0)
	second := seedAsset(t, db, room.ID, file.ID, 1)
	third := seedAsset(t, db, room.ID, file.ID, 2)

	assetSvc, err := NewAssetService(db)
	require.NoError(t, err)
	roomSvc, err := NewRoomService(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, assetSvc.Reorder(ctx, room.ID, []string{third.ID, first.ID, second.ID}))

	assets, err := roomSvc.Assets(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	require.Equal(t, third.ID, assets[0].ID)
	require.Equal(t, first.ID, assets[1].ID)
	require.Equal(t, second.ID, assets[2].ID)
}

func TestAssetServiceReorderRejectsForeignAssets(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := seedUser(t, db, "user-foreign")
	org := seedOrg(t, db, "org-foreign-assets")
	file := seedFile(t, db, org.ID, user.ID, "foreign.pdf")
	room := seedRoom(t, db, org.ID, user.ID)
	otherRoom := seedRoom(t, db, org.ID, user.ID)
	owned := seedAsset(t, db, room.ID, file.ID, 0)
	foreign := seedAsset(t, db, otherRoom.ID, file.ID, 0)

	svc, err := NewAssetService(db)
	require.NoError(t, err)

	err = svc.Reorder(context.Background(), room.ID, []string{foreign.ID, owned.ID})
	require.ErrorIs(t, err, ErrAssetNotFound)

	// The rejected call must not have moved anything.
	var got models.DealRoomAsset
	require.NoError(t, db.First(&got, "id = ?", foreign.ID).Error)
	require.Zero(t, got.Position)
}
