package middleware

import (
	"context"
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

type requestIDMiddleware struct{}

// NewRequestIDMiddleware echoes X-Request-ID, or generates one, and makes it
// visible to handlers through both Locals and the user context.
func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(common.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Locals(common.RequestIDContextKey, id)
		c.Locals(common.LatencyContextKey, time.Now())
		c.SetUserContext(context.WithValue(c.UserContext(), common.RequestIDContextKey, id))
		c.Set(common.RequestIDHeader, id)

		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(common.RequestIDContextKey).(string)
	return id
}
