package panel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types exchanged with the panel document.
const (
	TypeThemeChanged  = "themeChanged"
	TypeWrapChanged   = "wrapChanged"
	TypeStickyChanged = "stickyChanged"
	TypeLogMessage    = "logMessage"

	TypeDocument = "document"
	TypeReveal   = "reveal"
	TypeClosed   = "closed"
)

var ErrBadMessage = errors.New("invalid panel message")

// Message is sent by the panel document when the user changes a control.
type Message struct {
	Type   string `json:"type"`
	Theme  string `json:"theme,omitempty"`
	Wrap   *bool  `json:"wrap,omitempty"`
	Sticky *bool  `json:"sticky,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Outbound is sent to the panel viewer.
type Outbound struct {
	Type string `json:"type"`
	HTML string `json:"html,omitempty"`
}

// DecodeMessage parses and validates an inbound message.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Validate checks that m carries the field its type requires.
func (m Message) Validate() error {
	switch m.Type {
	case TypeThemeChanged:
		if m.Theme == "" {
			return fmt.Errorf("%w: %s without theme", ErrBadMessage, m.Type)
		}
	case TypeWrapChanged:
		if m.Wrap == nil {
			return fmt.Errorf("%w: %s without wrap", ErrBadMessage, m.Type)
		}
	case TypeStickyChanged:
		if m.Sticky == nil {
			return fmt.Errorf("%w: %s without sticky", ErrBadMessage, m.Type)
		}
	case TypeLogMessage:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return nil
}
