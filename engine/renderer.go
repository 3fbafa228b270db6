package engine

import (
	"bytes"
	"errors"
)

// File is one generated output. Source names what produced it (a template
// path or a generator step) and is recorded in the manifest.
type File struct {
	Path    string
	Content []byte
	Source  string
}

var errNoTemplates = errors.New("engine has no template file system")

// Render executes the named template with data.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	if e.cache == nil {
		return nil, errNoTemplates
	}

	tmpl, err := e.cache.Get(name)
	if err != nil {
		return nil, &GenerationError{Path: name, Message: "load template", Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &GenerationError{Path: name, Message: "execute template", Err: err}
	}

	e.logger.Debug("rendered template", "template", name, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// process runs every file through the post-processing chain. Failed files
// are dropped from the result; whether their errors are returned depends
// on the failure mode.
func (e *Engine) process(files []File) ([]File, error) {
	var multi MultiError
	out := make([]File, 0, len(files))

	for _, f := range files {
		content, err := e.chain.Process(f.Path, f.Content)
		if err != nil {
			if e.failMode == FailFast {
				return nil, &GenerationError{Path: f.Path, Message: "post-process", Err: err}
			}
			multi.Add(f.Path, "post-process", err)
			e.logger.Warn("post-processing failed", "path", f.Path, "error", err)
			continue
		}
		out = append(out, File{Path: f.Path, Content: content, Source: f.Source})
	}

	if multi.HasErrors() && e.failMode == FailAtEnd {
		return nil, &multi
	}
	return out, nil
}

func (e *Engine) fail(multi *MultiError, path, message string, err error) error {
	if e.failMode == FailFast {
		return &GenerationError{Path: path, Message: message, Err: err}
	}
	multi.Add(path, message, err)
	e.logger.Error(message, "path", path, "error", err)
	return nil
}
