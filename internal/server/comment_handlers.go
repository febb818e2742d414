package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/comments. Public; returns one page of
// comments with their author and post eager loaded.
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, meta, err := s.commentService.ListComments(c.UserContext(), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", models.Page{Items: comments, Meta: *meta})
}

// CreateComment handles POST /api/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID  uint   `json:"post_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(
			map[string][]string{"body": {"Invalid request body"}}))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  currentUserID(c),
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Comment created successfully", comment)
}

// GetComment handles GET /api/comments/:id. Public.
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Comment")
	if err != nil {
		return nil
	}
	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", comment)
}

// UpdateComment handles PUT/PATCH /api/comments/:id.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Comment")
	if err != nil {
		return nil
	}

	var req struct {
		Content *string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(
			map[string][]string{"body": {"Invalid request body"}}))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /api/comments/:id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "Comment")
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Comment deleted successfully", nil)
}
