package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sitemap-reconciler/pkg/handlers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := handlers.NewApp(version)
	if err := app.Execute(ctx, os.Args[1:]); err != nil {
		app.Logger().Error().Err(err).Msg("Sitemap reconciliation failed")
		cancel()
		os.Exit(1)
	}
}
