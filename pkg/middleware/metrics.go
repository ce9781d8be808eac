package middleware

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const unmatchedRoute = "unmatched"

type metricsMiddleware struct {
	logger *logrus.Logger
}

// NewMetricsMiddleware records request counters and latency per route and
// writes one access log line per request.
func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, ok := c.Locals(common.LatencyContextKey).(time.Time)
		if !ok {
			startTime = time.Now()
		}

		err := c.Next()
		if err != nil {
			// Let fiber's error handler set the final status before we read it.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		elapsed := time.Since(startTime)
		statusCode := c.Response().StatusCode()
		route := m.routeOf(c)

		if prometheus.Config.Enabled {
			prometheus.HTTPRequestsTotal.WithLabelValues(
				c.Method(),
				route,
				m.getStatusClass(statusCode),
			).Inc()
			prometheus.HTTPRequestLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
		}

		entry := m.logger.WithFields(logrus.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      statusCode,
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  requestID(c),
		})
		if statusCode >= fiber.StatusInternalServerError {
			entry.Warn("request completed")
		} else {
			entry.Debug("request completed")
		}

		return err
	}
}

// routeOf keeps label cardinality bounded: unknown paths share one label.
func (m *metricsMiddleware) routeOf(c *fiber.Ctx) string {
	r := c.Route()
	if r == nil || r.Path == "" || r.Path == "/" && c.Path() != "/" {
		return unmatchedRoute
	}
	return r.Path
}

func (m *metricsMiddleware) getStatusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
