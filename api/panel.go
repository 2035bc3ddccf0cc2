package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"xml-prettify/panel"
)

func (h *handler) getPanel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.session.Panels().Current()
	if !ok {
		http.Error(w, "panel not open", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p.Info())
}

// openPanel is the open-preview command. The body is optional; without it
// the panel opens on an empty selection.
func (h *handler) openPanel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection string `json:"selection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, created := h.session.Open(req.Selection)
	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	}
	_ = json.NewEncoder(w).Encode(p.Info())
}

func (h *handler) closePanel(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Close(); err != nil {
		if errors.Is(err, panel.ErrNotFound) {
			http.Error(w, "panel not open", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to close panel", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := h.session.Panels().Current()
	if !ok {
		http.Error(w, "panel not open", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, p.Document())
}

func (h *handler) selectionChanged(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	active := h.session.SelectionChanged(*req.Text)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"active": active})
}

func (h *handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.session.Preferences())
}
