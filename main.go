package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"xml-prettify/app"
	"xml-prettify/config"
)

func main() {
	configFile := os.Getenv("XMLPREVIEW_CONFIG")
	if configFile == "" {
		configFile = "xmlpreview.toml"
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("bad config: %v", err)
	}

	a, err := app.New(cfg, cfg.Logger())
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
