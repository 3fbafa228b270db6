package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type FileState int

const (
	FileStateUnknown FileState = iota
	// FileStateGenerated: on disk exactly as the last run wrote it.
	FileStateGenerated
	// FileStateModified: edited since the last run wrote it.
	FileStateModified
	// FileStateDeleted: recorded, but gone from disk.
	FileStateDeleted
	// FileStateOrphan: on disk, but never recorded.
	FileStateOrphan
)

func (s FileState) String() string {
	switch s {
	case FileStateGenerated:
		return "generated"
	case FileStateModified:
		return "modified"
	case FileStateDeleted:
		return "deleted"
	case FileStateOrphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// StateTracker holds one loaded manifest for the duration of a run.
type StateTracker struct {
	manager  *ManifestManager
	manifest *Manifest
	seen     map[string]bool
	dirty    bool
}

func NewStateTracker(manifestPath string) (*StateTracker, error) {
	mm := NewManifestManager(manifestPath)
	m, err := mm.Load()
	if err != nil {
		return nil, err
	}
	return &StateTracker{manager: mm, manifest: m, seen: make(map[string]bool)}, nil
}

// GetFileState compares path on disk against the manifest.
func (st *StateTracker) GetFileState(path string) (FileState, error) {
	key, err := st.manager.Key(path)
	if err != nil {
		return FileStateUnknown, err
	}

	content, err := os.ReadFile(path)
	missing := errors.Is(err, fs.ErrNotExist)
	if err != nil && !missing {
		return FileStateUnknown, fmt.Errorf("read %s: %w", path, err)
	}

	entry, recorded := st.manifest.Entries[key]
	switch {
	case !recorded && missing:
		return FileStateUnknown, nil
	case !recorded:
		return FileStateOrphan, nil
	case missing:
		return FileStateDeleted, nil
	case Hash(content) != entry.Hash:
		return FileStateModified, nil
	default:
		return FileStateGenerated, nil
	}
}

// Track records content as the generated state of path. Tracking the
// content the manifest already holds leaves the manifest clean.
func (st *StateTracker) Track(path string, content []byte, source string) error {
	key, err := st.manager.Key(path)
	if err != nil {
		return err
	}
	st.seen[key] = true

	if prev, ok := st.manifest.Entries[key]; ok && prev.Hash == Hash(content) && prev.Source == source {
		return nil
	}
	st.dirty = true
	return st.manager.Record(st.manifest, path, content, source)
}

// Stale lists recorded files that were not tracked during this run, as
// paths on disk. Such files come from outputs that were renamed or
// dropped from the configuration.
func (st *StateTracker) Stale() []string {
	var stale []string
	for _, key := range st.manifest.Paths() {
		if !st.seen[key] {
			stale = append(stale, st.manager.Resolve(key))
		}
	}
	return stale
}

// Forget drops stale entries from the manifest.
func (st *StateTracker) Forget() {
	for key := range st.manifest.Entries {
		if !st.seen[key] {
			delete(st.manifest.Entries, key)
			st.dirty = true
		}
	}
}

// Dirty reports whether Save would change the manifest.
func (st *StateTracker) Dirty() bool {
	return st.dirty
}

// Save writes the manifest if anything changed during this run.
func (st *StateTracker) Save() error {
	if !st.dirty {
		return nil
	}
	if err := st.manager.Save(st.manifest); err != nil {
		return err
	}
	st.dirty = false
	return nil
}

func (st *StateTracker) Manifest() *Manifest {
	return st.manifest
}
