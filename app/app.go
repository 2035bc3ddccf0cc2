// Package app wires the preview session to its HTTP surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"xml-prettify/api"
	"xml-prettify/config"
	"xml-prettify/panel"
	"xml-prettify/preference"
	"xml-prettify/preview"
	"xml-prettify/web"
)

// App is a configured preview server.
type App struct {
	Session *preview.Session

	cfg    config.Config
	store  *preference.Store
	server *http.Server
	logger *slog.Logger
}

// New loads preferences and builds the session and router for cfg.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	store, err := preference.NewStore(cfg.PrefsFile)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	defaults := preference.Preferences{Theme: cfg.DefaultTheme}
	panels := panel.NewManager(panel.NewProbability(cfg.SupporterProbability))
	panels.OnDispose(func(p *panel.Panel) {
		logger.Info("panel closed", slog.String("panel", p.ID))
	})
	sess := preview.NewSession(store, defaults, panels, logger)

	return &App{
		Session: sess,
		cfg:     cfg,
		store:   store,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.RegisterRoutes(sess, web.Static, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// URL returns the address the panel shell is served on.
func (a *App) URL() string {
	host, port, err := net.SplitHostPort(a.cfg.Addr)
	if err != nil {
		return "http://" + a.cfg.Addr + "/"
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Run serves HTTP until ctx is done, watching the preference file if
// configured.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.WatchPrefs {
		go func() {
			err := a.store.Watch(ctx, a.logger, a.Session.ReloadPreferences)
			if err != nil {
				a.logger.Warn("preference watch disabled", slog.String("error", err.Error()))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("xml preview listening", slog.String("url", a.URL()))
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	}
}
