package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded admin template bundle for consumers that
// want the built-in dashboard pages out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
