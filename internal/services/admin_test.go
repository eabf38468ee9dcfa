package services

import (
	"context"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	db := setupTestStore(t)
	svc := newTestUserService(t, db)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	older := makeTestUser(t, db, models.RoleUser)
	newer := makeTestUser(t, db, models.RoleAdmin)
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	require.NoError(t, db.UpdateUser(ctx, newer))

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, newer.ID, users[0].ID, "newest first")
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestStore(t)
	svc := newTestUserService(t, db)
	ctx := context.Background()
	u := makeTestUser(t, db, models.RoleUser)

	_, err := svc.UpdateUserRole(ctx, u.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	updated, err := svc.UpdateUserRole(ctx, u.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	cached, err := svc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, cached.IsAdmin())

	_, err = svc.UpdateUserRole(ctx, "missing", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_KeepsPlaylists(t *testing.T) {
	db := setupTestStore(t)
	svc := newTestUserService(t, db)
	playlists := newTestPlaylistService(t, db)
	ctx := context.Background()

	owner := makeTestUser(t, db, models.RoleUser)
	p, err := playlists.Create(ctx, owner, PlaylistInput{Name: "Road trip"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, owner.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, owner.ID), ErrUserNotFound)

	_, err = db.GetPlaylist(ctx, p.ID)
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	db := setupTestStore(t)
	svc := newTestUserService(t, db)
	playlists := newTestPlaylistService(t, db)
	ctx := context.Background()

	u := makeTestUser(t, db, models.RoleUser)
	makeTestUser(t, db, models.RoleUser)
	makeTestUser(t, db, models.RoleAdmin)
	_, err := playlists.Create(ctx, u, PlaylistInput{Name: "Mix"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalUsers:    3,
		AdminCount:    1,
		UserCount:     2,
		PlaylistCount: 1,
	}, stats)
}
