package http

import (
	"github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

const RootMessage = "Compliance Hawk API is running. Visit /docs for Swagger UI."

type rootHandler struct{}

func NewRootHandler() Handler {
	return &rootHandler{}
}

// Handle @Summary Liveness check
// @Tags System
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router / [get]
func (h *rootHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.MessageResponse{Message: RootMessage})
}
