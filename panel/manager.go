// Package panel manages the single live preview panel.
package panel

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("panel not found")

// Manager holds at most one active panel.
type Manager struct {
	mu        sync.Mutex
	current   *Panel
	decider   Decider
	onDispose func(*Panel)
}

// NewManager returns a manager that consults decider once per new panel.
func NewManager(decider Decider) *Manager {
	if decider == nil {
		decider = NewProbability(SupporterProbability)
	}
	return &Manager{decider: decider}
}

// OnDispose registers fn to run after a panel is closed.
func (m *Manager) OnDispose(fn func(*Panel)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDispose = fn
}

// Open returns the active panel, creating one if none exists. An existing
// panel is revealed instead of replaced; created reports which happened.
func (m *Manager) Open() (p *Panel, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.reveal()
		return m.current, false
	}
	m.current = newPanel(uuid.New().String(), m.decider.ShowSupporter())
	return m.current, true
}

// Current returns the active panel.
func (m *Manager) Current() (*Panel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// Close disposes the panel with the given id. An empty id closes whichever
// panel is active.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	p := m.current
	if p == nil || (id != "" && p.ID != id) {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.current = nil
	fn := m.onDispose
	m.mu.Unlock()

	p.dispose()
	if fn != nil {
		fn(p)
	}
	return nil
}
