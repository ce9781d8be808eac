package http

import (
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/model"
	"github.com/gofiber/fiber/v2"
)

type healthHandler struct {
	adapter model.Adapter
}

// NewHealthHandler reports the process as healthy even when the model is not
// configured; model_available tells the two apart.
func NewHealthHandler(adapter model.Adapter) Handler {
	return &healthHandler{adapter: adapter}
}

// Handle @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Health information"
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":          "healthy",
		"time":            time.Now().Format(time.RFC3339),
		"provider":        h.adapter.Provider(),
		"model_available": h.adapter.Available(),
	}
	if reason := h.adapter.Reason(); reason != "" {
		body["reason"] = reason
	}
	return c.Status(fiber.StatusOK).JSON(body)
}
