package write

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseWriterCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web", "meters", "meter_value_id.ts")

	w := NewBaseWriter()
	if err := w.Write(path, []byte("content"), DefaultOptions()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "content" {
		t.Errorf("content = %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestBaseWriterNeedsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meters_defs.h")
	w := NewBaseWriter()

	needs, err := w.NeedsWrite(path, []byte("a"))
	if err != nil || !needs {
		t.Fatalf("missing file: needs=%v err=%v", needs, err)
	}

	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	needs, err = w.NeedsWrite(path, []byte("a"))
	if err != nil || needs {
		t.Errorf("identical file: needs=%v err=%v", needs, err)
	}

	needs, err = w.NeedsWrite(path, []byte("b"))
	if err != nil || !needs {
		t.Errorf("changed file: needs=%v err=%v", needs, err)
	}
}

func TestBaseWriterNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meters_defs.h")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := NewBaseWriter().Write(path, []byte("new"), Options{})
	if err == nil {
		t.Fatal("expected error when overwrite is off")
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Errorf("file was replaced: %q", got)
	}
}

func TestBaseWriterBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meter_value_id.h")
	if err := os.WriteFile(path, []byte("hand edited"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.Backup = true
	opts.BackupDir = filepath.Join(dir, "backup")
	if err := NewBaseWriter().Write(path, []byte("generated"), opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "backup", "meter_value_id.h.bak"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "hand edited" {
		t.Errorf("backup = %q", backup)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "generated" {
		t.Errorf("content = %q", got)
	}
}

func TestBaseWriterBackupMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.ts")
	opts := DefaultOptions()
	opts.Backup = true

	if err := NewBaseWriter().Write(path, []byte("x"), opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Errorf("backup created for a file that did not exist")
	}
}
