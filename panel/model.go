package panel

import (
	"sync"
	"time"
)

// Panel is the live preview surface. Its document is always replaced
// whole; the attached viewer receives every replacement.
type Panel struct {
	ID            string
	CreatedAt     time.Time
	ShowSupporter bool
	Reveals       int
	Connected     bool

	mu       sync.Mutex
	document string
	outChan  chan Outbound
	kickChan chan struct{}
	done     chan struct{}
}

func newPanel(id string, showSupporter bool) *Panel {
	return &Panel{
		ID:            id,
		CreatedAt:     time.Now(),
		ShowSupporter: showSupporter,
		done:          make(chan struct{}),
	}
}

// Info is a point-in-time copy of a panel's exported state.
type Info struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ShowSupporter bool      `json:"show_supporter"`
	Reveals       int       `json:"reveals"`
	Connected     bool      `json:"connected"`
}

// Info returns a snapshot safe to encode while the panel is in use.
func (p *Panel) Info() Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Info{
		ID:            p.ID,
		CreatedAt:     p.CreatedAt,
		ShowSupporter: p.ShowSupporter,
		Reveals:       p.Reveals,
		Connected:     p.Connected,
	}
}

// Document returns the current HTML document.
func (p *Panel) Document() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.document
}

// SetDocument replaces the document and pushes it to the viewer, if any.
func (p *Panel) SetDocument(html string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.document = html
	p.send(Outbound{Type: TypeDocument, HTML: html})
}

func (p *Panel) reveal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Reveals++
	p.send(Outbound{Type: TypeReveal})
}

// send delivers msg without blocking; a viewer that falls behind misses
// intermediate documents, which later ones supersede. Caller holds p.mu.
func (p *Panel) send(msg Outbound) {
	if p.outChan == nil {
		return
	}
	select {
	case p.outChan <- msg:
	default:
	}
}

// SetClient registers a channel to receive outbound messages, starting with
// the current document. If a previous viewer is attached it is kicked: its
// kick channel is closed so the transport can drop that connection. Returns
// a kick channel that will be closed if this viewer is itself later
// displaced.
func (p *Panel) SetClient(ch chan Outbound) <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kickChan != nil {
		close(p.kickChan)
	}
	kick := make(chan struct{})
	p.kickChan = kick
	p.outChan = ch
	p.Connected = true
	if p.document != "" {
		p.send(Outbound{Type: TypeDocument, HTML: p.document})
	}
	return kick
}

// ClearClient is called when a viewer connection ends. It only updates
// panel state if ch is still the current viewer, and always closes ch so
// the transport's pump goroutine exits.
func (p *Panel) ClearClient(ch chan Outbound) {
	p.mu.Lock()
	if p.outChan == ch {
		p.outChan = nil
		p.Connected = false
		p.kickChan = nil
	}
	p.mu.Unlock()
	close(ch)
}

// Done returns a channel that is closed when the panel is disposed.
func (p *Panel) Done() <-chan struct{} {
	return p.done
}

func (p *Panel) dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
		return
	default:
	}
	close(p.done)
}
