package server

import (
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil after seeing
// it so Fiber's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as a positive uint. On
// failure it writes a 404 envelope and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewNotFoundError(resource))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage extracts the 1-based page query parameter.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// currentUserID returns the identity attached by the authenticator.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals(middleware.LocalUserID).(uint)
}

// currentToken returns the token record attached by the authenticator.
func currentToken(c *fiber.Ctx) *models.Token {
	return c.Locals(middleware.LocalToken).(*models.Token)
}
