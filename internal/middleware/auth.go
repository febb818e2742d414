// Package middleware provides authentication, logging and tracing
// middleware for the application.
package middleware

import (
	"errors"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Fiber locals keys populated by the authenticator.
const (
	LocalUserID = "userID"
	LocalToken  = "token"
)

// AuthRequired resolves the inbound bearer token against the token
// registry or rejects the request. No protected handler runs without it.
func AuthRequired(tokens repository.TokenRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret, ok := bearerSecret(c)
		if !ok {
			observability.AuthFailures.Inc()
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Unauthenticated"))
		}

		token, err := tokens.GetByHash(c.UserContext(), service.HashSecret(secret))
		if err != nil {
			observability.AuthFailures.Inc()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.RespondWithError(c,
					models.NewUnauthenticatedError("Unauthenticated"))
			}
			return models.RespondWithError(c,
				models.NewInternalError("Failed to authenticate request", err))
		}

		// Best effort; an authenticated request must not fail on this.
		_ = tokens.Touch(c.UserContext(), token.ID, time.Now())

		c.Locals(LocalUserID, token.UserID)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// bearerSecret extracts the secret from an "Authorization: Bearer ..."
// header.
func bearerSecret(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
