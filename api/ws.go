package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"xml-prettify/panel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	p, ok := h.session.Panels().Current()
	if !ok {
		http.Error(w, "panel not open", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg panel.Outbound) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	outChan := make(chan panel.Outbound, 16)
	kick := p.SetClient(outChan) // queues the current document; kicks any prior viewer
	defer p.ClearClient(outChan)

	// Pump panel output to the viewer. Exits when ClearClient closes outChan.
	go func() {
		for msg := range outChan {
			if err := writeMsg(msg); err != nil {
				return
			}
		}
	}()

	// Close the connection when the panel is disposed or this viewer is
	// displaced, so the read loop below unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-p.Done():
			writeMsg(panel.Outbound{Type: panel.TypeClosed}) //nolint:errcheck
			conn.Close()
		case <-kick:
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Viewer went away; the panel stays open until the host closes it.
			return
		}
		msg, err := panel.DecodeMessage(data)
		if err != nil {
			h.logger.Debug("ignoring panel message", slog.String("error", err.Error()))
			continue
		}
		if err := h.session.HandleMessage(msg); err != nil {
			h.logger.Warn("panel message", slog.String("type", msg.Type), slog.String("error", err.Error()))
		}
	}
}
