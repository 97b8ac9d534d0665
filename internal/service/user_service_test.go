package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushpak1497/swift/internal/domain"
)

func seededStore(t *testing.T) *recordingStore {
	t.Helper()
	store := newRecordingStore()
	_, err := NewImportService(store, twoUsers(), discardLogger()).LoadAll(context.Background())
	require.NoError(t, err)
	store.calls = nil
	return store
}

func TestGetUserDataBuildsAggregate(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, discardLogger())

	agg, err := svc.GetUserData(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Bret", agg.Username)
	require.Len(t, agg.Posts, 2)
	assert.Equal(t, int64(11), agg.Posts[0].ID)
	assert.Len(t, agg.Posts[0].Comments, 2)
	assert.NotNil(t, agg.Posts[1].Comments)
	assert.Empty(t, agg.Posts[1].Comments)

	// one user read, one posts read, one comments read per post
	assert.Equal(t, []string{"FindUser", "FindPostsByUser", "FindCommentsByPost", "FindCommentsByPost"}, store.calls)
}

func TestGetUserDataSortsByID(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.InsertUser(ctx, &domain.User{ID: 5}))
	require.NoError(t, store.InsertPost(ctx, &domain.Post{ID: 53, UserID: 5}))
	require.NoError(t, store.InsertPost(ctx, &domain.Post{ID: 51, UserID: 5}))
	require.NoError(t, store.InsertComments(ctx, []domain.Comment{{ID: 9, PostID: 51}, {ID: 3, PostID: 51}}))

	agg, err := NewUserService(store, discardLogger()).GetUserData(ctx, 5)
	require.NoError(t, err)

	require.Len(t, agg.Posts, 2)
	assert.Equal(t, int64(51), agg.Posts[0].ID)
	assert.Equal(t, int64(53), agg.Posts[1].ID)
	assert.Equal(t, int64(3), agg.Posts[0].Comments[0].ID)
	assert.Equal(t, int64(9), agg.Posts[0].Comments[1].ID)
}

func TestGetUserDataMissingUser(t *testing.T) {
	store := newRecordingStore()
	_, err := NewUserService(store, discardLogger()).GetUserData(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"FindUser"}, store.calls)
}

func TestGetUserDataUserWithoutPosts(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.InsertUser(ctx, &domain.User{ID: 101, Name: "Ann"}))

	agg, err := NewUserService(store, discardLogger()).GetUserData(ctx, 101)
	require.NoError(t, err)
	assert.NotNil(t, agg.Posts)
	assert.Empty(t, agg.Posts)
}

func TestCreateUserConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newRecordingStore(), discardLogger())

	require.NoError(t, svc.CreateUser(ctx, &domain.User{ID: 101}))
	assert.ErrorIs(t, svc.CreateUser(ctx, &domain.User{ID: 101}), domain.ErrConflict)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewUserService(store, discardLogger())

	require.NoError(t, svc.DeleteUser(ctx, 1))
	assert.Equal(t, []string{
		"FindUser", "DeleteUser", "FindPostsByUser", "DeletePostsByUser", "DeleteCommentsByPosts",
	}, store.calls)

	_, err := store.MemoryStore.FindUser(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, postID := range []int64{11, 12} {
		comments, err := store.MemoryStore.FindCommentsByPost(ctx, postID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	}

	// the other user is untouched
	agg, err := svc.GetUserData(ctx, 2)
	require.NoError(t, err)
	require.Len(t, agg.Posts, 1)
	assert.Len(t, agg.Posts[0].Comments, 1)
}

func TestDeleteUserWithoutPostsSkipsCommentDelete(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	require.NoError(t, store.MemoryStore.InsertUser(ctx, &domain.User{ID: 101}))

	require.NoError(t, NewUserService(store, discardLogger()).DeleteUser(ctx, 101))
	assert.Equal(t, []string{"FindUser", "DeleteUser", "FindPostsByUser", "DeletePostsByUser"}, store.calls)
}

func TestDeleteUserMissingMutatesNothing(t *testing.T) {
	store := seededStore(t)
	err := NewUserService(store, discardLogger()).DeleteUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"FindUser"}, store.calls)
}

func TestDeleteUserPartialFailureLeavesOrphans(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	store.failOn = "DeletePostsByUser"

	err := NewUserService(store, discardLogger()).DeleteUser(ctx, 1)
	require.ErrorIs(t, err, errInjected)

	_, err = store.MemoryStore.FindUser(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	posts, err := store.MemoryStore.FindPostsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 2, "no compensation runs after the user is removed")
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewUserService(store, discardLogger())

	require.NoError(t, svc.ClearAll(ctx))
	for _, id := range []int64{1, 2} {
		_, err := svc.GetUserData(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
}
