package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCommentService(t *testing.T) (*CommentService, *models.Post) {
	t.Helper()
	postRepo := newStubPostRepo()
	postSvc := NewPostService(postRepo)
	post := createTestPost(t, postSvc, 1, "Host post")
	return NewCommentService(newStubCommentRepo(), postRepo), post
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, post := setupCommentService(t)

		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  2,
			PostID:  post.ID,
			Content: "Nice post!",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(2), comment.UserID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, "Nice post!", comment.Content)
	})

	t.Run("Missing post is a field error, not a 404", func(t *testing.T) {
		svc, _ := setupCommentService(t)

		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  2,
			PostID:  42,
			Content: "Orphan",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields["post_id"], "The selected post_id is invalid.")
	})

	t.Run("Missing fields are reported", func(t *testing.T) {
		svc, _ := setupCommentService(t)

		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 2})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields["content"], "The content field is required.")
		assert.Contains(t, appErr.Fields["post_id"], "The post_id field is required.")
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner can update", func(t *testing.T) {
		svc, post := setupCommentService(t)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 2, PostID: post.ID, Content: "Original",
		})
		require.NoError(t, err)

		content := "Edited"
		updated, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    2,
			CommentID: comment.ID,
			Content:   &content,
		})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Content)
	})

	t.Run("Non-owner is forbidden even for the post author", func(t *testing.T) {
		svc, post := setupCommentService(t)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 2, PostID: post.ID, Content: "Original",
		})
		require.NoError(t, err)

		content := "Hijacked"
		// User 1 owns the post but not the comment.
		_, err = svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    1,
			CommentID: comment.ID,
			Content:   &content,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)

		current, err := svc.GetComment(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", current.Content)
	})

	t.Run("Absent content leaves the comment unchanged", func(t *testing.T) {
		svc, post := setupCommentService(t)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 2, PostID: post.ID, Content: "Original",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    2,
			CommentID: comment.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Original", updated.Content)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner can delete", func(t *testing.T) {
		svc, post := setupCommentService(t)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 2, PostID: post.ID, Content: "Doomed",
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteComment(ctx, 2, comment.ID))

		_, err = svc.GetComment(ctx, comment.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("Non-owner is forbidden", func(t *testing.T) {
		svc, post := setupCommentService(t)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 2, PostID: post.ID, Content: "Protected",
		})
		require.NoError(t, err)

		err = svc.DeleteComment(ctx, 3, comment.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("Missing comment yields not found", func(t *testing.T) {
		svc, _ := setupCommentService(t)

		err := svc.DeleteComment(ctx, 2, 42)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
