package engine

import (
	"fmt"
	"strings"
)

// GenerationError ties a failure to the output (or template) it concerns.
type GenerationError struct {
	Path    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MultiError collects the failures of a FailAtEnd run.
type MultiError struct {
	Errors []*GenerationError
}

func (m *MultiError) Error() string {
	switch len(m.Errors) {
	case 0:
		return "no errors"
	case 1:
		return m.Errors[0].Error()
	}

	msgs := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		msgs[i] = "  " + err.Error()
	}
	return fmt.Sprintf("%d errors:\n%s", len(m.Errors), strings.Join(msgs, "\n"))
}

func (m *MultiError) Unwrap() []error {
	errs := make([]error, len(m.Errors))
	for i, err := range m.Errors {
		errs[i] = err
	}
	return errs
}

func (m *MultiError) Add(path, message string, err error) {
	m.Errors = append(m.Errors, &GenerationError{Path: path, Message: message, Err: err})
}

func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// ErrorOrNil returns m if it holds errors, nil otherwise.
func (m *MultiError) ErrorOrNil() error {
	if m == nil || !m.HasErrors() {
		return nil
	}
	return m
}
