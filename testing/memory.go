// Package testing holds helpers shared by metergen's tests: an in-memory
// file system for templates, builders for the CSV tables and golden files.
package testing

import (
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// MemoryFS is a writable fs.FS kept in memory.
type MemoryFS struct {
	files map[string]*memoryFile
}

type memoryFile struct {
	name    string
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

func NewMemoryFS() *MemoryFS {
	m := &MemoryFS{files: make(map[string]*memoryFile)}
	m.files["."] = &memoryFile{name: ".", mode: fs.ModeDir | 0o755}
	return m
}

// WriteFile adds or replaces name, creating parent directories.
func (m *MemoryFS) WriteFile(name string, data []byte) *MemoryFS {
	name = path.Clean(strings.TrimPrefix(name, "/"))
	m.files[name] = &memoryFile{name: name, content: data, mode: 0o644, modTime: time.Now()}
	for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			break
		}
		m.files[dir] = &memoryFile{name: dir, mode: fs.ModeDir | 0o755, modTime: time.Now()}
	}
	return m
}

func (m *MemoryFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &handle{file: f, fsys: m}, nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	for p, f := range m.files {
		if p != "." && path.Dir(p) == name {
			entries = append(entries, fs.FileInfoToDirEntry(f))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

type handle struct {
	file   *memoryFile
	fsys   *MemoryFS
	offset int
}

func (h *handle) Read(b []byte) (int, error) {
	if h.file.mode.IsDir() {
		return 0, &fs.PathError{Op: "read", Path: h.file.name, Err: fs.ErrInvalid}
	}
	if h.offset >= len(h.file.content) {
		return 0, io.EOF
	}
	n := copy(b, h.file.content[h.offset:])
	h.offset += n
	return n, nil
}

func (h *handle) ReadDir(n int) ([]fs.DirEntry, error) {
	if !h.file.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: h.file.name, Err: fs.ErrInvalid}
	}
	entries, err := h.fsys.ReadDir(h.file.name)
	if err != nil || n <= 0 || n >= len(entries) {
		return entries, err
	}
	return entries[:n], nil
}

func (h *handle) Stat() (fs.FileInfo, error) { return h.file, nil }
func (h *handle) Close() error               { return nil }

func (f *memoryFile) Name() string       { return path.Base(f.name) }
func (f *memoryFile) Size() int64        { return int64(len(f.content)) }
func (f *memoryFile) Mode() fs.FileMode  { return f.mode }
func (f *memoryFile) ModTime() time.Time { return f.modTime }
func (f *memoryFile) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFile) Sys() any           { return nil }
