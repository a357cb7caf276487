package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/gophcms/internal/server"
	"github.com/dmitrijs2005/gophcms/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("startup: %v", err)
	}
}

// run builds the application and blocks until it shuts down.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}

	app.Run(ctx)
	return nil
}
