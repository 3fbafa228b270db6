package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// userConfigDir is where per-user CLI defaults live.
func userConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "metergen")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "metergen")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "metergen")
		}
	}
	return ""
}

// cliConfigPaths lists the files kong reads flag defaults from, per format.
// Flags and environment variables override them. Missing files are skipped.
func cliConfigPaths() (jsonPaths, yamlPaths, tomlPaths []string) {
	dir := userConfigDir()
	if dir == "" {
		return nil, nil, nil
	}
	return []string{filepath.Join(dir, "cli.json")},
		[]string{filepath.Join(dir, "cli.yaml"), filepath.Join(dir, "cli.yml")},
		[]string{filepath.Join(dir, "cli.toml")}
}
