// Package write puts generated files on disk.
package write

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Writer is what the engine writes generated files through.
type Writer interface {
	Write(path string, content []byte, options Options) error
	NeedsWrite(path string, content []byte) (bool, error)
}

type Options struct {
	CreateDirs bool
	// Backup copies the current file to <name>.bak (in BackupDir when set)
	// before it is replaced.
	Backup    bool
	BackupDir string
	Overwrite bool
	// Atomic writes a temporary file next to the target and renames it, so
	// readers never observe a half-written file.
	Atomic bool
}

// DefaultOptions is what generated outputs are written with.
func DefaultOptions() Options {
	return Options{CreateDirs: true, Overwrite: true, Atomic: true}
}

type BaseWriter struct {
	Mode fs.FileMode
}

func NewBaseWriter() *BaseWriter {
	return &BaseWriter{Mode: 0o644}
}

func (bw *BaseWriter) Write(path string, content []byte, options Options) error {
	if options.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create directories: %w", err)
		}
	}

	if !options.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if options.Backup {
		if err := bw.backup(path, options.BackupDir); err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}

	if options.Atomic {
		return bw.atomicWrite(path, content)
	}
	return os.WriteFile(path, content, bw.Mode)
}

// NeedsWrite reports whether path is missing or differs from content.
func (bw *BaseWriter) NeedsWrite(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return !bytes.Equal(existing, content), nil
}

func (bw *BaseWriter) backup(path, backupDir string) error {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if backupDir == "" {
		backupDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(backupDir, filepath.Base(path)+".bak"), existing, bw.Mode)
}

func (bw *BaseWriter) atomicWrite(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(bw.Mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
