// Package preference holds the preview's persisted display settings.
package preference

// Keys under which preferences are persisted.
const (
	KeyTheme    = "xmlPrettify.theme"
	KeyWordWrap = "xmlPrettify.wordWrap"
	KeySticky   = "xmlPrettify.sticky"
)

// Preferences are the user's display settings for the preview panel.
type Preferences struct {
	Theme    string `json:"theme"`
	WordWrap bool   `json:"wordWrap"`
	Sticky   bool   `json:"sticky"`
}

// Load reads preferences from s, using defaults for missing keys.
func Load(s *Store, defaults Preferences) Preferences {
	return Preferences{
		Theme:    s.String(KeyTheme, defaults.Theme),
		WordWrap: s.Bool(KeyWordWrap, defaults.WordWrap),
		Sticky:   s.Bool(KeySticky, defaults.Sticky),
	}
}

func SaveTheme(s *Store, theme string) error { return s.Set(KeyTheme, theme) }

func SaveWordWrap(s *Store, wrap bool) error { return s.Set(KeyWordWrap, wrap) }

func SaveSticky(s *Store, sticky bool) error { return s.Set(KeySticky, sticky) }
