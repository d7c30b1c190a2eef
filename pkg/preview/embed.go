package preview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in preview template bundle for callers that
// want to extend or serve it alongside their own assets.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
