// Package web carries the server-rendered HTML templates and the static
// assets they reference, embedded into the binary.
package web

import "embed"

// Templates holds the layout and per-page templates.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds the stylesheets served under /static/. Uploaded profile
// pictures are not embedded; they live on disk in the configured
// profile-pics directory.
//
//go:embed static/main.css
var Static embed.FS
