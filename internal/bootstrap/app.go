// Package bootstrap wires configuration into the running application.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"gke-notify/internal/notifications"
	"gke-notify/internal/shared/config"
	"gke-notify/internal/shared/server"
	"gke-notify/internal/shared/telemetry"
	"gke-notify/internal/slack"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Notifications *notifications.Service
	Handler       *notifications.Handler
}

// Build prepares the logger, services and router from configuration.
func Build(cfg config.Config) (*App, error) {
	if err := telemetry.Init(cfg.JSONLog, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	svc := notifications.NewService(cfg.ProjectName, cfg.SlackWebhookURL, slack.NewClient())
	handler := notifications.NewHandler(svc)
	router := server.NewRouter(handler)

	return &App{
		Config:        cfg,
		Router:        router,
		Notifications: svc,
		Handler:       handler,
	}, nil
}
