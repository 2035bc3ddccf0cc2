// Package nvimhost connects a Neovim instance to the preview session as a
// remote plugin.
package nvimhost

import (
	"fmt"

	"github.com/neovim/go-client/nvim/plugin"

	"xml-prettify/panel"
)

// Session is the part of the preview session the editor drives.
type Session interface {
	Open(selection string) (*panel.Panel, bool)
	SelectionChanged(text string) bool
	Close() error
}

// Vim expressions evaluated by Neovim before each call. Both yield the
// selected text, joined with newlines.
const (
	// Last visual selection; commands run after visual mode has ended.
	lastSelectionExpr = `visualmode() ==# '' ? '' : join(getregion(getpos("'<"), getpos("'>"), #{type: visualmode()}), "\n")`
	// Live selection in characterwise, linewise or blockwise visual mode,
	// empty otherwise.
	liveSelectionExpr = `mode() =~# '^[vV\x16]' ? join(getregion(getpos('v'), getpos('.'), #{type: mode()}), "\n") : ''`
)

// host holds the handlers behind the plugin's commands and autocmd.
type host struct {
	sess Session
	url  string
	out  func(msg string) error
}

func (h *host) open(selection string) error {
	if _, created := h.sess.Open(selection); created {
		return h.out(fmt.Sprintf("XML preview: %s\n", h.url))
	}
	return nil
}

func (h *host) close() error {
	if err := h.sess.Close(); err != nil {
		return h.out("XML preview is not open\n")
	}
	return nil
}

func (h *host) selectionChanged(selection string) error {
	h.sess.SelectionChanged(selection)
	return nil
}

// Register installs the XmlPreview and XmlPreviewClose commands and the
// selection-change autocmd. url is shown to the user when a panel opens.
func Register(p *plugin.Plugin, sess Session, url string) error {
	h := &host{sess: sess, url: url, out: func(msg string) error {
		return p.Nvim.WriteOut(msg)
	}}

	p.HandleCommand(&plugin.CommandOptions{
		Name: "XmlPreview",
		Eval: lastSelectionExpr,
	}, h.open)
	p.HandleCommand(&plugin.CommandOptions{Name: "XmlPreviewClose"}, h.close)
	p.HandleAutocmd(&plugin.AutocmdOptions{
		Event:   "CursorMoved",
		Pattern: "*",
		Eval:    liveSelectionExpr,
	}, h.selectionChanged)
	return nil
}
