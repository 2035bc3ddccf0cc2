// Command xmlpreview-nvim is a Neovim remote plugin that serves the XML
// preview panel and feeds it the editor's visual selection.
package main

import (
	"context"
	"log"
	"os"

	"github.com/neovim/go-client/nvim/plugin"

	"xml-prettify/app"
	"xml-prettify/config"
	"xml-prettify/nvimhost"
)

func main() {
	// stdout carries msgpack-rpc to Neovim; all logging goes to stderr.
	log.SetOutput(os.Stderr)

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

	logger := cfg.Logger()
	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := a.Run(ctx); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	plugin.Main(func(p *plugin.Plugin) error {
		logger.Info("registering neovim handlers")
		return nvimhost.Register(p, a.Session, a.URL())
	})
}
