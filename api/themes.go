package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"xml-prettify/highlight"
)

func (h *handler) getThemeCSS(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "name"), ".css")
	if !ok || !highlight.IsTheme(name) {
		http.Error(w, "theme not found", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := highlight.WriteThemeCSS(&buf, name); err != nil {
		http.Error(w, "failed to render theme", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=3600")
	_, _ = w.Write(buf.Bytes())
}
