package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/negocify-api/pkg/metrics"
)

// RequestLogger registra cada petición con su latencia, request id y usuario; en los 500
// incluye el error que dejó writeError.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			_ = c.App().ErrorHandler(c, err)
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if rid, ok := c.Locals("requestid").(string); ok {
			ev = ev.Str("request_id", rid)
		}
		if p := GetPrincipal(c); p != nil {
			ev = ev.Int64("user_id", p.User.ID)
		}
		if cause, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(cause)
		}
		ev.Msg("petición")
		return nil
	}
}

// MetricsMiddleware cuenta peticiones y latencias por ruta; los 403 suman a las denegaciones.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			_ = c.App().ErrorHandler(c, err)
		}
		path := c.Route().Path
		status := c.Response().StatusCode()
		m.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		if status == fiber.StatusForbidden {
			m.ObserveDenial(path)
		}
		return nil
	}
}
