package preview

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine renders pongo2 templates loaded from an fs.FS, caching compiled
// templates across renders.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS) *engine {
	return &engine{
		set:       pongo2.NewSet("preview", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}
}

func (e *engine) render(name string, data pongo2.Context) (string, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("preview: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}
