package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/itinerary-planner/internal/config"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Use installs the global middleware chain: request id, access log, CORS.
func Use(r *gin.Engine, corsCfg config.CORSConfig, logger zerolog.Logger) {
	r.Use(RequestID(), AccessLog(logger), CORS(corsCfg))
}

// RequestID reuses an incoming X-Request-ID or generates a UUID.
func RequestID() gin.HandlerFunc {
	return requestid.New(
		requestid.WithGenerator(uuid.NewString),
		requestid.WithCustomHeaderStrKey(RequestIDHeader),
	)
}

// AccessLog writes one zerolog line per request once the handler chain finishes.
func AccessLog(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = l.Error()
		case status >= http.StatusBadRequest:
			event = l.Warn()
		default:
			event = l.Info()
		}
		event.
			Str("request_id", requestid.Get(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("took", time.Since(start)).
			Msg("request handled")
	}
}

// CORS applies the configured cross-origin policy. An empty origin list or one
// containing "*" allows any origin.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  cfg.Methods,
		AllowHeaders:  cfg.Headers,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(cfg.Origins) == 0 || slices.Contains(cfg.Origins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.Origins
	}
	return cors.New(cc)
}
