// Package web embeds the settings page served by the local server.
package web

import "embed"

//go:embed static
var StaticFiles embed.FS
