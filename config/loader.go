// Package config loads metergen's configuration from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that check themselves
// after decoding.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by configuration types that fill omitted
// fields. Defaults runs before Validate.
type Defaulter interface {
	Defaults()
}

// LoadYAML decodes the YAML file at path into target. Unknown fields are
// rejected.
func LoadYAML[T any](path string, target *T) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}

	if err := decode(data, target); err != nil {
		return fmt.Errorf("%s: %w", absPath, err)
	}
	return nil
}

// LoadYAMLFromString decodes yamlContent into target.
func LoadYAMLFromString[T any](yamlContent string, target *T) error {
	return decode([]byte(yamlContent), target)
}

func decode[T any](data []byte, target *T) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse YAML configuration: %w", err)
	}
	return finish(target)
}

// LoadTOML decodes the TOML file at path into target. Unknown keys are
// rejected.
func LoadTOML[T any](path string, target *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}
	if err := decodeTOML(data, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decodeTOML[T any](data []byte, target *T) error {
	if err := toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(target); err != nil {
		return fmt.Errorf("parse TOML configuration: %w", err)
	}
	return finish(target)
}

// Load picks the decoder from the file extension: .toml files are TOML,
// everything else is YAML.
func Load[T any](path string, target *T) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(path, target)
	}
	return LoadYAML(path, target)
}

func finish[T any](target *T) error {
	if d, ok := any(target).(Defaulter); ok {
		d.Defaults()
	}
	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}
