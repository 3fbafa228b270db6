package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/cpcf/metergen/config"
	gentest "github.com/cpcf/metergen/testing"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, vars())
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	ctx.Bind(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return ctx.Run()
}

func TestGenerateAndCheckCommands(t *testing.T) {
	dir := t.TempDir()
	if err := gentest.SampleTables().WriteDir(dir); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, config.DefaultFile)
	if err := os.WriteFile(cfg, []byte("outputs:\n  web_dir: web\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "generate", "--config", cfg, "--dry-run"); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "meter_value_id.h")); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote output: %v", err)
	}

	if err := run(t, "check", "-c", cfg); err == nil {
		t.Fatal("check passed before the first generation")
	}

	if err := run(t, "generate", "-c", cfg); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := run(t, "check", "-c", cfg); err != nil {
		t.Fatalf("check after generate: %v", err)
	}
}

func TestMissingConfig(t *testing.T) {
	if err := run(t, "generate", "-c", filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing configuration")
	}
}

func TestLogLevelFlag(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, vars())
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse([]string{"--log-level", "trace", "check"}); err != nil {
		t.Fatalf("parse trace: %v", err)
	}
	if cli.Log.Level != "trace" {
		t.Errorf("log level = %q, want trace", cli.Log.Level)
	}
	if _, err := parser.Parse([]string{"--log-level", "verbose", "check"}); err == nil {
		t.Error("unknown log level was accepted")
	}
}

func TestCLIConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	_, yamlPaths, _ := cliConfigPaths()
	if want := filepath.Join(dir, "metergen", "cli.yaml"); yamlPaths[0] != want {
		t.Fatalf("yaml path = %q, want %q", yamlPaths[0], want)
	}

	if err := os.MkdirAll(filepath.Dir(yamlPaths[0]), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPaths[0], []byte("log-level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cli CLI
	parser, err := kong.New(&cli,
		vars(),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse([]string{"check"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cli.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug from cli.yaml", cli.Log.Level)
	}

	if _, err := parser.Parse([]string{"--log-level", "warn", "check"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cli.Log.Level != "warn" {
		t.Errorf("log level = %q, flags must override cli.yaml", cli.Log.Level)
	}
}
