package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body of create style requests
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorStatus maps a sentinel to the status code and public message
// returned for it.
type ErrorStatus struct {
	Target  error
	Status  int
	Message string
}

// SendError writes the first matching entry in table, or a 500 with a
// generic body when nothing matches. Internal details are logged only.
func SendError(c *fiber.Ctx, logger Logger, err error, table ...ErrorStatus) error {
	for _, entry := range table {
		if errors.Is(err, entry.Target) {
			msg := entry.Message
			if msg == "" {
				msg = entry.Target.Error()
			}
			return c.Status(entry.Status).JSON(ErrorResponse{Error: msg})
		}
	}

	if logger == nil {
		logger = defLogger{}
	}
	logger.Error("unhandled request error",
		"path", c.Path(),
		"method", c.Method(),
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "InternalServerError",
	})
}

// NewErrorHandler returns the fiber app level error handler. Errors
// created with fiber.NewError keep their status, anything else is a 500.
func NewErrorHandler(logger Logger, debug bool) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
		}

		if debug {
			logger.Debug("request failed", "details", print.MaybePrettyJSON(map[string]any{
				"path":   c.Path(),
				"method": c.Method(),
				"error":  err.Error(),
			}))
		}

		return SendError(c, logger, err)
	}
}
