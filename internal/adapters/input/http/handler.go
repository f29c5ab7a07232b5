package http

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPHandler struct - Primary/Driving adapter for plain HTTP endpoints
type HTTPHandler struct{}

// New func - Creates new HTTP handler
func New() *HTTPHandler {
	return &HTTPHandler{}
}

// HealthCheck godoc
// @Summary Liveness check
// @Description Returns a fixed acknowledgment
// @Tags Health
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/python [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HelloWorld)
}
