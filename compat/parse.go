// Package compat compares a new identifier space against the artifacts
// of the previous run. Published IDs, names, paths and class ordinals
// are permanent.
package compat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Member is one enumerator of a generated enum.
type Member struct {
	Identifier string
	Value      uint32
}

var (
	memberPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([0-9]+)\s*,?`)
	infoPattern   = regexp.MustCompile(`/\*\s*([A-Za-z_][A-Za-z0-9_]*)\s*\*/\s*([0-9]+)\s*:\s*\{.*tree_path:\s*(\[[^\]]*\])`)
)

// ParseEnum extracts the members of `enum class <name>` from text.
func ParseEnum(text, name string) ([]Member, error) {
	start := -1
	for _, line := range []string{"enum class " + name, "export const enum " + name} {
		if idx := strings.Index(text, line); idx >= 0 {
			start = idx
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("enum %s not found", name)
	}

	body := text[start:]
	open := strings.IndexByte(body, '{')
	end := strings.IndexByte(body, '}')
	if open < 0 || end < open {
		return nil, fmt.Errorf("enum %s is not terminated", name)
	}

	var members []Member
	for _, line := range strings.Split(body[open+1:end], "\n") {
		m := memberPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("enum %s: member %s: %w", name, m[1], err)
		}
		members = append(members, Member{Identifier: m[1], Value: uint32(v)})
	}
	return members, nil
}

// ParsePaths extracts the tree path of every value from the METER_VALUE_INFOS
// table of a generated web module. Lists are JSON arrays as written by
// this generator, or Python list reprs as written by older generators.
func ParsePaths(text string) (map[uint32][]string, error) {
	paths := make(map[uint32][]string)
	for _, line := range strings.Split(text, "\n") {
		m := infoPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("value %s: %w", m[1], err)
		}

		segments, err := decodeList(m[3])
		if err != nil {
			return nil, fmt.Errorf("value %s: tree path %s: %w", m[1], m[3], err)
		}
		paths[uint32(id)] = segments
	}
	return paths, nil
}

func decodeList(list string) ([]string, error) {
	if strings.HasPrefix(list, "['") {
		return decodeReprList(list)
	}
	var segments []string
	if err := json.Unmarshal([]byte(list), &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// decodeReprList decodes a Python list of strings. Elements are quoted with
// ' or " and may contain backslash escapes.
func decodeReprList(list string) ([]string, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(list, "["), "]")
	segments := []string{}
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return segments, nil
		}

		quote := s[0]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("unexpected %q", s[0])
		}
		var b strings.Builder
		i := 1
		for ; i < len(s) && s[i] != quote; i++ {
			c := s[i]
			if c == '\\' && i+1 < len(s) {
				i++
				switch s[i] {
				case 'n':
					c = '\n'
				case 't':
					c = '\t'
				default:
					c = s[i]
				}
			}
			b.WriteByte(c)
		}
		if i == len(s) {
			return nil, errors.New("unterminated string")
		}
		segments = append(segments, b.String())

		s = strings.TrimLeft(s[i+1:], " \t")
		if s == "" {
			return segments, nil
		}
		if s[0] != ',' {
			return nil, fmt.Errorf("expected ',' before %q", s)
		}
		s = s[1:]
	}
}

// Snapshot is the identifier space recorded in previously generated files.
type Snapshot struct {
	Values  []Member
	Classes []Member
	Paths   map[uint32][]string
}

// Empty reports whether there was no previous run.
func (s *Snapshot) Empty() bool {
	return len(s.Values) == 0 && len(s.Classes) == 0
}

// LoadSnapshot reads the previous value header, class header and web
// value module. Missing files contribute nothing.
func LoadSnapshot(valueHeader, classHeader, valueModule string) (*Snapshot, error) {
	s := &Snapshot{Paths: map[uint32][]string{}}

	text, ok, err := readOptional(valueHeader)
	if err != nil {
		return nil, err
	}
	if ok {
		if s.Values, err = ParseEnum(text, "MeterValueID"); err != nil {
			return nil, fmt.Errorf("%s: %w", valueHeader, err)
		}
	}

	text, ok, err = readOptional(classHeader)
	if err != nil {
		return nil, err
	}
	if ok {
		if s.Classes, err = ParseEnum(text, "MeterClassID"); err != nil {
			return nil, fmt.Errorf("%s: %w", classHeader, err)
		}
	}

	text, ok, err = readOptional(valueModule)
	if err != nil {
		return nil, err
	}
	if ok {
		if s.Paths, err = ParsePaths(text); err != nil {
			return nil, fmt.Errorf("%s: %w", valueModule, err)
		}
	}

	return s, nil
}

func readOptional(path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
