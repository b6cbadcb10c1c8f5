package main

import (
	"context"
	"log"

	"github.com/hwdelite/notesvc/internal/server"
	"github.com/hwdelite/notesvc/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		// Fail fast: a server without its secrets must not start.
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
