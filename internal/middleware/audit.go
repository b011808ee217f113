package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Audit emits a structured log record for every request, so device
// ingestion traffic can be traced without a separate access-log pipeline.
func Audit() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		method := c.Method()
		path := c.Path()
		ip := c.IP()

		err := c.Next()

		slog.Info("http_request",
			"method", method,
			"path", path,
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ip,
		)

		return err
	}
}
