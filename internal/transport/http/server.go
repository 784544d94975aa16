package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rotech/townhall/internal/config"
	"github.com/rotech/townhall/internal/core"
)

// NewServer builds the HTTP server with WebSocket, REST and metrics routes.
func NewServer(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", NewWSHandler(hub, cfg, logger).Handle)

	api := NewAPIHandlers(hub, logger)
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/session", api.Session)
		apiGroup.GET("/presence", api.Presence)
		apiGroup.GET("/messages", api.Messages)
		apiGroup.GET("/events", api.Events)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
