package repository

import (
	"context"
	"testing"

	"photogram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "sunset")
	other := createTestPost(t, db, alice, "other")

	comment := &models.Comment{Content: "nice", UserID: bob.ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctx, comment))

	t.Run("scoped to parent post", func(t *testing.T) {
		got, err := repo.GetForPost(ctx, comment.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "nice", got.Content)

		_, err = repo.GetForPost(ctx, comment.ID, other.ID)
		require.Error(t, err)
	})

	t.Run("owner filter conflates with missing", func(t *testing.T) {
		got, err := repo.GetOwnedForPost(ctx, comment.ID, post.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, comment.ID, got.ID)

		_, foreignErr := repo.GetOwnedForPost(ctx, comment.ID, post.ID, alice.ID)
		_, missingErr := repo.GetOwnedForPost(ctx, 9999, post.ID, alice.ID)
		require.Error(t, foreignErr)
		require.Error(t, missingErr)
		assert.Equal(t, foreignErr.Error(), missingErr.Error())
	})
}

func TestCommentBulkDeletes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "sunset")
	other := createTestPost(t, db, alice, "other")

	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "a", UserID: alice.ID, PostID: post.ID}))
	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "b", UserID: bob.ID, PostID: post.ID}))
	require.NoError(t, repo.Create(ctx, &models.Comment{Content: "c", UserID: bob.ID, PostID: other.ID}))

	t.Run("by post", func(t *testing.T) {
		require.NoError(t, repo.DeleteByPost(ctx, post.ID))

		remaining, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		untouched, err := repo.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, untouched, 1)
	})

	t.Run("by user", func(t *testing.T) {
		require.NoError(t, repo.DeleteByUser(ctx, bob.ID))

		remaining, err := repo.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
