// Package web serves the name catalogue over HTTP: a JSON API under /api
// and a small embedded HTML page at /. Binds to localhost by default; there
// is no authentication.
package web

import "embed"

//go:embed static/index.html
var staticFS embed.FS
