// Package state records which files a generator run produced, so later
// runs can tell generated files from hand-edited ones.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	ManifestVersion = "1"
	Generator       = "metergen"
)

type ManifestEntry struct {
	Path   string `json:"path"`
	Hash   string `json:"hash"`
	Size   int64  `json:"size"`
	Source string `json:"source,omitempty"`
}

type Manifest struct {
	Version   string                   `json:"version"`
	RunID     string                   `json:"run_id"`
	Generated time.Time                `json:"generated"`
	Generator string                   `json:"generator"`
	Entries   map[string]ManifestEntry `json:"entries"`
}

// Paths returns the recorded paths in sorted order.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ManifestManager loads and saves the manifest file. Entry paths are
// stored slash-separated and relative to the manifest's directory.
type ManifestManager struct {
	root         string
	manifestPath string
}

func NewManifestManager(manifestPath string) *ManifestManager {
	return &ManifestManager{
		root:         filepath.Dir(manifestPath),
		manifestPath: manifestPath,
	}
}

func (mm *ManifestManager) Path() string {
	return mm.manifestPath
}

// Load reads the manifest, or returns an empty one when none exists yet.
func (mm *ManifestManager) Load() (*Manifest, error) {
	data, err := os.ReadFile(mm.manifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return newManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", mm.manifestPath, err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry)
	}
	return &m, nil
}

// Save stamps m with a fresh run id and writes it atomically.
func (mm *ManifestManager) Save(m *Manifest) error {
	m.Version = ManifestVersion
	m.Generator = Generator
	m.RunID = uuid.NewString()
	m.Generated = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(mm.root, 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	tmpPath := mm.manifestPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmpPath, mm.manifestPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("move manifest: %w", err)
	}
	return nil
}

// Key converts a file path into the manifest key for it.
func (mm *ManifestManager) Key(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs(mm.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Resolve is the inverse of Key.
func (mm *ManifestManager) Resolve(key string) string {
	return filepath.Join(mm.root, filepath.FromSlash(key))
}

// Record stores content's hash under the key for path.
func (mm *ManifestManager) Record(m *Manifest, path string, content []byte, source string) error {
	key, err := mm.Key(path)
	if err != nil {
		return err
	}
	m.Entries[key] = ManifestEntry{
		Path:   key,
		Hash:   Hash(content),
		Size:   int64(len(content)),
		Source: source,
	}
	return nil
}

// Hash is the hex sha256 of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func newManifest() *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		Generator: Generator,
		Entries:   make(map[string]ManifestEntry),
	}
}
