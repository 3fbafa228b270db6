package testing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UpdateEnv names the environment variable that rewrites golden files
// instead of comparing against them.
const UpdateEnv = "METERGEN_UPDATE_GOLDEN"

// Golden compares generated output with files kept under a testdata
// directory.
type Golden struct {
	dir    string
	update bool
}

func NewGolden(dir string) *Golden {
	return &Golden{dir: dir, update: os.Getenv(UpdateEnv) != ""}
}

// SetUpdate switches between comparing and rewriting.
func (g *Golden) SetUpdate(update bool) {
	g.update = update
}

// Path returns where the golden file for name lives.
func (g *Golden) Path(name string) string {
	return filepath.Join(g.dir, name+".golden")
}

// Assert fails when actual differs from the golden file for name. In
// update mode the golden file is rewritten instead.
func (g *Golden) Assert(name, actual string) error {
	path := g.Path(name)

	if g.update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create golden directory: %w", err)
		}
		return os.WriteFile(path, []byte(actual), 0o644)
	}

	expected, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("golden file %s does not exist (set %s=1 to create it)", path, UpdateEnv)
	}
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}

	if string(expected) != actual {
		return fmt.Errorf("%s differs from %s:\n%s", name, path, Diff(string(expected), actual))
	}
	return nil
}

// Diff lists the lines that differ between expected and actual.
func Diff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var diff strings.Builder
	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}

		fmt.Fprintf(&diff, "line %d:\n", i+1)
		if i < len(expectedLines) {
			fmt.Fprintf(&diff, "  - %s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&diff, "  + %s\n", a)
		}
	}
	return diff.String()
}
