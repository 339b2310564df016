package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panaderia/bread-orders/internal/api/metrics"
)

// RequestLogger writes one structured entry per request and records the HTTP
// metrics. Errors are rendered here so the logged status is the one sent.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			dur := time.Since(start)

			req := c.Request()
			res := c.Response()
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(res.Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(dur.Seconds())

			var ev *zerolog.Event
			switch {
			case res.Status >= 500:
				ev = log.Error().Err(err)
			case res.Status >= 400:
				ev = log.Warn()
			default:
				ev = log.Info()
			}

			ev = ev.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", route).
				Int("status", res.Status).
				Int64("bytes", res.Size).
				Dur("duration", dur).
				Str("remote_ip", c.RealIP())
			if rid := res.Header().Get(echo.HeaderXRequestID); rid != "" {
				ev = ev.Str("request_id", rid)
			}
			if sess, ok := SessionFrom(c); ok {
				ev = ev.Str("user", sess.Username)
			}
			ev.Msg("request completed")
			return nil
		}
	}
}
