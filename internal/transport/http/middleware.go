package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Log after request
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}

// CORSMiddleware allows the configured origins. An empty list or "*"
// allows any origin. Entries match either the full origin or its host, the
// same patterns the WebSocket accept uses.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	anyOrigin := len(allowed) == 0 || lo.Contains(allowed, "*")

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if anyOrigin || lo.Contains(allowed, origin) {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && lo.Contains(allowed, u.Host)
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
