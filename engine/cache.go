package engine

import (
	"fmt"
	"io/fs"
	"path"
	"sync"
	"text/template"
)

// TemplateCache parses templates from one file system on first use.
type TemplateCache struct {
	fsys  fs.FS
	funcs template.FuncMap

	mu        sync.Mutex
	templates map[string]*template.Template
}

func NewTemplateCache(fsys fs.FS, funcs template.FuncMap) *TemplateCache {
	return &TemplateCache{
		fsys:      fsys,
		funcs:     funcs,
		templates: make(map[string]*template.Template),
	}
}

func (c *TemplateCache) Get(name string) (*template.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.templates[name]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(path.Base(name)).
		Funcs(c.funcs).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	c.templates[name] = tmpl
	return tmpl, nil
}

func (c *TemplateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.templates)
}
