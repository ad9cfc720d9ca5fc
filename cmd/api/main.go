package main

import (
	"log"

	"gke-notify/internal/bootstrap"
	"gke-notify/internal/shared/config"
	"gke-notify/internal/shared/server"
	"gke-notify/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer telemetry.Sync()

	addr := server.Addr(cfg.Host, cfg.Port)
	telemetry.Info("starting server", map[string]any{"listen_addr": addr})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
