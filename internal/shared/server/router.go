package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gke-notify/internal/notifications"
	"gke-notify/internal/shared/server/middleware"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(h *notifications.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)

	h.RegisterRoutes(r)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "UP")
	})

	return r
}

// Addr joins host and port into a listen address.
func Addr(host, port string) string {
	if port == "" {
		port = "8080"
	}
	return host + ":" + port
}
