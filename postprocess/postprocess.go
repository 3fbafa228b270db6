// Package postprocess runs generated content through a sequence of
// transformations before it is compared with, and written over, the files
// on disk.
//
//	chain := postprocess.NewChain()
//	chain.Add("whitespace", processors.NewTrimWhitespace())
//	chain.Add("header", processors.NewAddGeneratedHeader(banner, ".h", ".ts"))
//	out, err := chain.Process("firmware/meter_value_id.h", content)
package postprocess

import (
	"fmt"
)

// Processor transforms the content of one file. Processors that do not
// apply to a file return the content unchanged.
type Processor interface {
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

type step struct {
	name string
	proc Processor
}

// Chain applies processors in the order they were added.
type Chain struct {
	steps []step
}

func NewChain() *Chain {
	return &Chain{}
}

// Add appends a processor. The name only shows up in errors.
func (c *Chain) Add(name string, p Processor) *Chain {
	c.steps = append(c.steps, step{name: name, proc: p})
	return c
}

// Process runs every processor on content and stops at the first error.
func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	result := content
	for _, s := range c.steps {
		processed, err := s.proc.ProcessContent(filePath, result)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.name, filePath, err)
		}
		result = processed
	}
	return result, nil
}

// Names lists the processors in application order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.name
	}
	return names
}
