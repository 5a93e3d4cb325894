package middleware

import (
	"strconv"
	"time"

	"billed/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records the latency of every request by route template and status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.HTTPRequests.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
