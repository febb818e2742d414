package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// CommentsPerPage is the fixed page size of the comment index.
const CommentsPerPage = 20

// CommentService implements ownership-enforced CRUD for comments.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// CreateCommentInput carries the fields for creating a comment.
type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// UpdateCommentInput carries a partial field set for updating a comment.
type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   *string
}

// ListComments returns one page of comments, newest first, with the
// owning user and post preloaded.
func (s *CommentService) ListComments(ctx context.Context, page int) ([]*models.Comment, *models.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.comments.Count(ctx)
	if err != nil {
		return nil, nil, models.NewInternalError("Failed to fetch comments", err)
	}
	comments, err := s.comments.List(ctx, CommentsPerPage, pageOffset(page, CommentsPerPage))
	if err != nil {
		return nil, nil, models.NewInternalError("Failed to fetch comments", err)
	}
	meta := &models.PageMeta{
		CurrentPage: page,
		PerPage:     CommentsPerPage,
		Total:       total,
		LastPage:    lastPage(total, CommentsPerPage),
	}
	return comments, meta, nil
}

// CreateComment validates the input, requires the referenced post to
// exist and persists a comment owned by the authenticated user.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	errs := validation.Errors{}
	errs.Required("content", in.Content)
	if in.PostID == 0 {
		errs.Add("post_id", "The post_id field is required.")
	} else {
		exists, err := s.posts.Exists(ctx, in.PostID)
		if err != nil {
			return nil, models.NewInternalError("Failed to create comment", err)
		}
		if !exists {
			errs.Add("post_id", "The selected post_id is invalid.")
		}
	}
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	comment := &models.Comment{
		UserID:  in.UserID,
		PostID:  in.PostID,
		Content: in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError("Failed to create comment", err)
	}

	return s.GetComment(ctx, comment.ID)
}

// GetComment fetches a comment by id with its relations loaded.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment")
		}
		return nil, models.NewInternalError("Failed to fetch comment", err)
	}
	return comment, nil
}

// UpdateComment applies a partial update to a comment owned by the
// caller. Ownership is checked before validation and mutation.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(comment, in.UserID, "update", "comment"); err != nil {
		return nil, err
	}

	if in.Content != nil {
		errs := validation.Errors{}
		errs.Required("content", *in.Content)
		if errs.Any() {
			return nil, models.NewValidationError(errs)
		}
		comment.Content = *in.Content
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError("Failed to update comment", err)
	}
	return s.GetComment(ctx, in.CommentID)
}

// DeleteComment removes a comment owned by the caller.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(comment, userID, "delete", "comment"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return models.NewInternalError("Failed to delete comment", err)
	}
	return nil
}
