// Package preview turns editor selections into the preview panel's document.
package preview

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"xml-prettify/highlight"
	"xml-prettify/panel"
	"xml-prettify/preference"
	"xml-prettify/xmlformat"
)

// Session is the preview's whole mutable state: preferences, the sticky
// content and the panel. Every entry point takes the session lock, so host
// events are handled one at a time and each runs to completion.
type Session struct {
	mu       sync.Mutex
	prefs    preference.Preferences
	store    *preference.Store
	defaults preference.Preferences

	sticky    string
	hasSticky bool
	shown     string

	panels   *panel.Manager
	renderer *highlight.Renderer
	format   func(string) xmlformat.Result
	logger   *slog.Logger
}

// NewSession loads preferences from store and returns a session with no
// panel open.
func NewSession(store *preference.Store, defaults preference.Preferences, panels *panel.Manager, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:    store,
		defaults: defaults,
		prefs:    preference.Load(store, defaults),
		panels:   panels,
		renderer: highlight.New(),
		format:   xmlformat.First,
		logger:   logger.With(slog.String("component", "preview")),
	}
	if !highlight.IsTheme(s.prefs.Theme) {
		s.prefs.Theme = highlight.DefaultTheme
	}
	return s
}

// Preferences returns the current preferences.
func (s *Session) Preferences() preference.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Panels returns the session's panel manager.
func (s *Session) Panels() *panel.Manager {
	return s.panels
}

// Open handles the explicit open command: it creates the panel or reveals
// the existing one, then previews selection.
func (s *Session) Open(selection string) (p *panel.Panel, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, created = s.panels.Open()
	s.refresh(selection)
	return p, created
}

// SelectionChanged previews text if a panel is open. While no panel is
// open the event is ignored; only Open brings the panel back.
func (s *Session) SelectionChanged(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.panels.Current(); !ok {
		return false
	}
	s.refresh(text)
	return true
}

// Refresh previews text, creating the panel if needed.
func (s *Session) Refresh(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(text)
}

// Close closes the active panel on behalf of the host.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels.Close("")
}

func (s *Session) refresh(text string) {
	text = strings.TrimSpace(text)
	p, ok := s.panels.Current()
	if !ok {
		p, _ = s.panels.Open()
	}

	if r := s.format(text); r.OK {
		if s.prefs.Sticky {
			s.sticky, s.hasSticky = r.Text, true
		}
		s.logger.Debug("formatted selection", slog.String("attempt", r.Attempt))
		s.show(p, r.Text)
		return
	}

	if !s.prefs.Sticky {
		s.sticky, s.hasSticky = "", false
	}
	if s.hasSticky {
		s.show(p, s.sticky)
		return
	}
	s.show(p, "")
}

func (s *Session) show(p *panel.Panel, content string) {
	s.shown = content
	p.SetDocument(s.document(p, content))
}

func (s *Session) document(p *panel.Panel, content string) string {
	doc, err := Render(Page{
		Preferences:   s.prefs,
		Themes:        highlight.Themes(),
		ShowSupporter: p.ShowSupporter,
		Body:          s.renderer.Render(content),
	})
	if err != nil {
		s.logger.Error("render document", slog.String("error", err.Error()))
		return ""
	}
	return doc
}

// rerender redraws the open panel with the content already on screen.
func (s *Session) rerender() {
	if p, ok := s.panels.Current(); ok {
		s.show(p, s.shown)
	}
}

var ErrUnknownTheme = errors.New("unknown theme")

// HandleMessage applies a message sent by the panel document. Preference
// changes are persisted and the panel is redrawn with them.
func (s *Session) HandleMessage(m panel.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch m.Type {
	case panel.TypeThemeChanged:
		if !highlight.IsTheme(m.Theme) {
			return ErrUnknownTheme
		}
		s.prefs.Theme = m.Theme
		err = preference.SaveTheme(s.store, m.Theme)
	case panel.TypeWrapChanged:
		s.prefs.WordWrap = *m.Wrap
		err = preference.SaveWordWrap(s.store, *m.Wrap)
	case panel.TypeStickyChanged:
		s.prefs.Sticky = *m.Sticky
		err = preference.SaveSticky(s.store, *m.Sticky)
	case panel.TypeLogMessage:
		s.logger.Info("panel", slog.String("text", m.Text))
		return nil
	}
	if err != nil {
		s.logger.Warn("persist preference", slog.String("type", m.Type), slog.String("error", err.Error()))
	}
	s.rerender()
	return err
}

// ReloadPreferences re-reads the preference store, for when it was edited
// outside the session, and redraws the panel.
func (s *Session) ReloadPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = preference.Load(s.store, s.defaults)
	if !highlight.IsTheme(s.prefs.Theme) {
		s.prefs.Theme = highlight.DefaultTheme
	}
	s.rerender()
}
