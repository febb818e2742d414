package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts. Public; returns one page of posts
// with their author and comments eager loaded.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, meta, err := s.postService.ListPosts(c.UserContext(), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", models.Page{Items: posts, Meta: *meta})
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string     `json:"title"`
		Content     string     `json:"content"`
		Status      string     `json:"status"`
		PublishedAt *time.Time `json:"published_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(
			map[string][]string{"body": {"Invalid request body"}}))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Post created successfully", post)
}

// GetPost handles GET /api/posts/:id. Public.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Post")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", post)
}

// UpdatePost handles PUT/PATCH /api/posts/:id. Absent fields are left
// untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Post")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string    `json:"title"`
		Content     *string    `json:"content"`
		Status      *string    `json:"status"`
		PublishedAt *time.Time `json:"published_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(
			map[string][]string{"body": {"Invalid request body"}}))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		PostID:      id,
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post updated successfully", post)
}

// DeletePost handles DELETE /api/posts/:id. Deleting a post removes its
// comments as well.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Post")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Post deleted successfully", nil)
}
