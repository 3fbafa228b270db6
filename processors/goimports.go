// Package processors holds the post-processors metergen runs every
// generated file through.
package processors

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// GoImports formats generated Go sources and fixes their import block.
// Other files pass through unchanged.
type GoImports struct {
	TabWidth int
}

func NewGoImports() *GoImports {
	return &GoImports{TabWidth: 8}
}

func (g *GoImports) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if strings.ToLower(filepath.Ext(filePath)) != ".go" {
		return content, nil
	}

	formatted, err := imports.Process(filePath, content, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  g.TabWidth,
	})
	if err == nil {
		return formatted, nil
	}

	// Fall back to plain gofmt when imports cannot be resolved.
	formatted, fmtErr := format.Source(content)
	if fmtErr != nil {
		return nil, fmt.Errorf("format %s: %w", filePath, fmtErr)
	}
	return formatted, nil
}
