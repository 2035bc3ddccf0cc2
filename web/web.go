// Package web embeds the panel shell page served to the browser.
package web

import "embed"

// Static holds the shell page. The panel document itself is rendered per
// refresh and loaded into the shell's frame.
//
//go:embed static/*
var Static embed.FS
