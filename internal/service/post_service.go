package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// PostsPerPage is the fixed page size of the post index.
const PostsPerPage = 15

// PostService implements ownership-enforced CRUD for posts.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePostInput carries the fields for creating a post. The owner is
// always the authenticated user; a client-supplied owner is ignored.
type CreatePostInput struct {
	UserID      uint
	Title       string
	Content     string
	Status      string
	PublishedAt *time.Time
}

// UpdatePostInput carries a partial field set for updating a post. Nil
// pointers mean "not supplied": only supplied fields are validated and
// applied.
type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       *string
	Content     *string
	Status      *string
	PublishedAt *time.Time
}

// ListPosts returns one page of posts, newest publication first, with
// the owning user and each comment's owning user preloaded.
func (s *PostService) ListPosts(ctx context.Context, page int) ([]*models.Post, *models.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, nil, models.NewInternalError("Failed to fetch posts", err)
	}
	posts, err := s.posts.List(ctx, PostsPerPage, pageOffset(page, PostsPerPage))
	if err != nil {
		return nil, nil, models.NewInternalError("Failed to fetch posts", err)
	}
	meta := &models.PageMeta{
		CurrentPage: page,
		PerPage:     PostsPerPage,
		Total:       total,
		LastPage:    lastPage(total, PostsPerPage),
	}
	return posts, meta, nil
}

// CreatePost validates the input and persists a post owned by the
// authenticated user. A missing published_at defaults to now.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	errs := validation.Errors{}
	errs.Required("title", in.Title)
	errs.MaxLen("title", in.Title, 255)
	errs.Required("content", in.Content)
	errs.Required("status", in.Status)
	errs.In("status", in.Status, models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived)
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	publishedAt := in.PublishedAt
	if publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       in.Title,
		Content:     in.Content,
		Status:      in.Status,
		PublishedAt: publishedAt,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError("Failed to create post", err)
	}

	return s.GetPost(ctx, post.ID)
}

// GetPost fetches a post by id with its relations loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError("Failed to fetch post", err)
	}
	return post, nil
}

// UpdatePost applies a partial update to a post owned by the caller.
// The ownership check strictly precedes validation and mutation.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(post, in.UserID, "update", "post"); err != nil {
		return nil, err
	}

	errs := validation.Errors{}
	if in.Title != nil {
		errs.Required("title", *in.Title)
		errs.MaxLen("title", *in.Title, 255)
	}
	if in.Content != nil {
		errs.Required("content", *in.Content)
	}
	if in.Status != nil {
		errs.Required("status", *in.Status)
		errs.In("status", *in.Status, models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived)
	}
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if in.PublishedAt != nil {
		post.PublishedAt = in.PublishedAt
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError("Failed to update post", err)
	}
	return s.GetPost(ctx, in.PostID)
}

// DeletePost removes a post owned by the caller. Its comments are
// removed with it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(post, userID, "delete", "post"); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return models.NewInternalError("Failed to delete post", err)
	}
	return nil
}
