package models

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON response wrapper used by every endpoint.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// PageMeta describes one page of a paginated collection.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Page wraps a page of items together with its pagination metadata.
type Page struct {
	Items interface{} `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes the failure envelope for err. AppError codes
// select the status; anything else is treated as an internal fault and
// reported with a generic message while the cause is logged server-side.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError("Something went wrong", err)
	}

	env := Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}
	if appErr.Code == CodeInternal {
		slog.ErrorContext(c.UserContext(), "request failed with internal error",
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
		if appErr.Err != nil {
			env.Error = appErr.Err.Error()
		}
	}

	return c.Status(appErr.Status()).JSON(env)
}
