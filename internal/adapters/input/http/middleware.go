package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the fiber locals key the requestid middleware stores the ID under
const RequestIDKey = "requestid"

// RequestLogger logs one line per request with the request ID set by the requestid middleware.
// Errors from later handlers are rendered here so the logged status is the one sent.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		entry := logrus.WithFields(logrus.Fields{
			"request_id": c.Locals(RequestIDKey),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    time.Since(start).String(),
		})
		if err != nil {
			entry.WithError(err).Error("Request failed")
			return nil
		}
		entry.Info("Request handled")
		return nil
	}
}

// ErrorHandler renders errors returned from handlers and middleware as ErrorResponse
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Detail: fiberErr.Message})
	}
	logrus.Errorf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(InternalServerError)
}
