package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"resume-review/internal/bootstrap"
	"resume-review/internal/shared/config"
	"resume-review/internal/shared/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	err = server.Run(ctx, server.Addr(cfg.Port), app.Router)
	if closeErr := app.Close(); closeErr != nil {
		log.Printf("close error: %v", closeErr)
	}
	if err != nil {
		log.Printf("server error: %v", err)
		os.Exit(1)
	}
}
