package api

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xml-prettify/preview"
)

func RegisterRoutes(sess *preview.Session, staticFS fs.FS, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{session: sess, logger: logger.With(slog.String("component", "api"))}

	// Host API: what the editor calls.
	r.Get("/api/panel", h.getPanel)
	r.Post("/api/panel", h.openPanel)
	r.Delete("/api/panel", h.closePanel)
	r.Get("/api/panel/document", h.getDocument)
	r.Post("/api/selection", h.selectionChanged)
	r.Get("/api/preferences", h.getPreferences)

	// WebSocket to the panel viewer.
	r.Get("/api/panel/ws", h.handleWS)

	r.Get("/themes/{name}", h.getThemeCSS)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// Tests pass an FS already rooted at the files, so probe index.html.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Using http.FileServer with a path ending in "index.html" triggers Go's
	// built-in redirect to "./", so read the file manually.
	r.Get("/", serveFile(staticSub, "index.html"))

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	session *preview.Session
	logger  *slog.Logger
}
